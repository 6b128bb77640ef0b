// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// issuance service and handlers to distinguish between different failure
// scenarios. The most important distinction in this system is between a
// lookup that found nothing (the expected success path of the card-number
// uniqueness check) and a lookup that failed outright, which must abort
// the workflow.
package repository

import "errors"

// ErrNotFound is returned when an exact-match lookup finds no row.
// During card-number allocation this is the signal that a candidate is
// free; on the entry-form lookup endpoint handlers translate it into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateCard is returned when an entry-form insert is rejected by
// the UNIQUE index on card_no. Two concurrent workflows can both pass the
// allocator's pre-check for the same candidate; the index is what settles
// the race.
var ErrDuplicateCard = errors.New("duplicate card number")
