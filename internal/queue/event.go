// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records completed issuances.
package queue

// CardIssuedEvent is published when an arrival card has been issued: the
// entry-form linkage row exists and the PDF is retrievable.  It contains
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type CardIssuedEvent struct {
	EntryFormID uint64 `json:"entry_form_id"`
	CardNo      string `json:"card_no"`
	UniqueID    string `json:"unique_id"`
	FullName    string `json:"full_name"`
	PassportNo  string `json:"passport_no"`
	ArrivalDate string `json:"arrival_date"`
	PDFURL      string `json:"pdf_url"`
	IssuedAt    string `json:"issued_at"`
}
