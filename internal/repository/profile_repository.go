package repository

import (
	"context"
	"database/sql"

	"github.com/kritsada/arrival-card-service/internal/model"
)

// ProfileRepo provides insert and lookup operations for traveller
// profiles.  Profiles are append-only: there are no update or delete
// statements anywhere in this repository.  All timestamp fields are
// assumed to be stored in UTC.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// Create inserts a new profile row and populates the generated ID and
// database defaults on the provided record.  The insert commits on its
// own; the issuance workflow deliberately does not span a transaction
// across entities.
func (r *ProfileRepo) Create(ctx context.Context, p *model.PersonalProfile) error {
	const q = `INSERT INTO profiles
		(family_name, first_name, middle_name, passport_no, nationality, occupation,
		 gender, visa_no, residence_country, residence_city, phone_code, phone_no, date_of_birth)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		p.FamilyName, p.FirstName, p.MiddleName, p.PassportNo, p.Nationality, p.Occupation,
		p.Gender, p.VisaNo, p.CountryOfResidence, p.CityOfResidence, p.PhoneCode, p.PhoneNo, p.DateOfBirth,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	return r.scanByID(ctx, p.ID, p)
}

// GetByID loads one profile by primary key.  ErrNotFound is returned when
// no such row exists.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (*model.PersonalProfile, error) {
	var p model.PersonalProfile
	if err := r.scanByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) scanByID(ctx context.Context, id uint64, p *model.PersonalProfile) error {
	const sel = `SELECT id, family_name, first_name, middle_name, passport_no, nationality,
						occupation, gender, visa_no, residence_country, residence_city,
						phone_code, phone_no, date_of_birth, created_at
				 FROM profiles WHERE id = ?`
	var middleName, visaNo sql.NullString
	err := r.db.QueryRowContext(ctx, sel, id).Scan(
		&p.ID, &p.FamilyName, &p.FirstName, &middleName, &p.PassportNo, &p.Nationality,
		&p.Occupation, &p.Gender, &visaNo, &p.CountryOfResidence, &p.CityOfResidence,
		&p.PhoneCode, &p.PhoneNo, &p.DateOfBirth, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if middleName.Valid {
		m := middleName.String
		p.MiddleName = &m
	}
	if visaNo.Valid {
		v := visaNo.String
		p.VisaNo = &v
	}
	return nil
}
