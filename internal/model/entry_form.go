package model

import "time"

// EntryForm is the linkage record tying a profile, a travel record and an
// issued document together, stored in the `entry_form` table.  Its
// existence is the durable proof that a submission completed: the PDF was
// rendered, uploaded, and a unique arrival-card number was committed.
// The card_no column carries a UNIQUE index; that index, not the
// allocator's pre-check, is the authoritative uniqueness guard.
//
// Fields:
//  ID        – primary key identifier.
//  ProfileID – foreign key into profiles.
//  TravelID  – foreign key into travel_information.
//  UniqueID  – random document identifier; QR payload and storage key stem.
//  CardNo    – public five-digit arrival-card number.
//  PDFPath   – object-storage key of the rendered card.
//  PDFURL    – resolved public URL of the rendered card.
//  CreatedAt – timestamp of insertion.
type EntryForm struct {
	ID        uint64    `json:"id"`         // entry_form.id
	ProfileID uint64    `json:"profile_id"` // entry_form.profile_id
	TravelID  uint64    `json:"travel_id"`  // entry_form.travel_id
	UniqueID  string    `json:"unique_id"`  // entry_form.unique_id
	CardNo    string    `json:"card_no"`    // entry_form.card_no (UNIQUE)
	PDFPath   string    `json:"pdf_path"`   // entry_form.pdf_path
	PDFURL    string    `json:"pdf_url"`    // entry_form.pdf_url
	CreatedAt time.Time `json:"created_at"` // entry_form.created_at
}
