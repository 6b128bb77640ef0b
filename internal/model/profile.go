package model

import "time"

// PersonalProfile represents one traveller's identity section as stored in
// the `profiles` table.  A profile is written once per submission and is
// never updated or deleted afterwards.  The json tags mirror the wire
// field names used by the public API so rows can be returned directly in
// the submission response.
//
// Fields:
//  ID          – primary key identifier.
//  FamilyName  – traveller's family name (required).
//  FirstName   – traveller's first name (required).
//  MiddleName  – optional middle name.
//  PassportNo  – passport number (required).
//  Nationality – nationality as selected on the form.
//  Occupation  – traveller's occupation.
//  Gender      – declared gender.
//  VisaNo      – optional visa number.
//  CountryOfResidence – country of residence.
//  CityOfResidence    – city of residence.
//  PhoneCode   – international dialling code.
//  PhoneNo     – subscriber number.
//  DateOfBirth – date of birth (DATE column, UTC midnight).
//  CreatedAt   – timestamp of insertion.
type PersonalProfile struct {
	ID                 uint64    `json:"id"`                   // profiles.id
	FamilyName         string    `json:"family_name"`          // profiles.family_name
	FirstName          string    `json:"first_name"`           // profiles.first_name
	MiddleName         *string   `json:"middle_name"`          // profiles.middle_name (nullable)
	PassportNo         string    `json:"passport_no"`          // profiles.passport_no
	Nationality        string    `json:"selected_nationality"` // profiles.nationality
	Occupation         string    `json:"occupation"`           // profiles.occupation
	Gender             string    `json:"gender"`               // profiles.gender
	VisaNo             *string   `json:"visa_no"`              // profiles.visa_no (nullable)
	CountryOfResidence string    `json:"selected_country"`     // profiles.residence_country
	CityOfResidence    string    `json:"selected_city"`        // profiles.residence_city
	PhoneCode          string    `json:"phone_no_code"`        // profiles.phone_code
	PhoneNo            string    `json:"phone_no"`             // profiles.phone_no
	DateOfBirth        time.Time `json:"date_of_birth"`        // profiles.date_of_birth
	CreatedAt          time.Time `json:"created_at"`           // profiles.created_at
}
