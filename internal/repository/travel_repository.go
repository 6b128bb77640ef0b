package repository

import (
	"context"
	"database/sql"

	"github.com/kritsada/arrival-card-service/internal/model"
)

// TravelRepo provides insert and lookup operations for travel records.
// The departure leg columns are nullable as a group: either the traveller
// declared an onward journey or they did not.  All timestamp fields are
// assumed to be stored in UTC.
type TravelRepo struct {
	db *sql.DB
}

// NewTravelRepo returns a new TravelRepo bound to the given database.
func NewTravelRepo(db *sql.DB) *TravelRepo { return &TravelRepo{db: db} }

// Create inserts a new travel row and populates the generated ID and
// database defaults on the provided record.
func (r *TravelRepo) Create(ctx context.Context, t *model.TravelInformation) error {
	const q = `INSERT INTO travel_information
		(date_of_arrival, country_boarded, purpose_of_travel,
		 mode_of_travel_arrival, mode_of_transport_arrival, flight_vehicle_no_arrival,
		 date_of_departure, mode_of_travel_departure, mode_of_transport_departure, flight_vehicle_no_departure,
		 type_of_accommodation, province, district_area, sub_district, post_code, address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		t.DateOfArrival, t.CountryBoarded, t.PurposeOfTravel,
		t.ModeOfTravelArrival, t.ModeOfTransportArrival, t.FlightVehicleNoArrival,
		t.DateOfDeparture, t.ModeOfTravelDeparture, t.ModeOfTransportDeparture, t.FlightVehicleNoDeparture,
		t.TypeOfAccommodation, t.Province, t.DistrictArea, t.SubDistrict, t.PostCode, t.Address,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.scanByID(ctx, t.ID, t)
}

// GetByID loads one travel record by primary key.  ErrNotFound is
// returned when no such row exists.
func (r *TravelRepo) GetByID(ctx context.Context, id uint64) (*model.TravelInformation, error) {
	var t model.TravelInformation
	if err := r.scanByID(ctx, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TravelRepo) scanByID(ctx context.Context, id uint64, t *model.TravelInformation) error {
	const sel = `SELECT id, date_of_arrival, country_boarded, purpose_of_travel,
						mode_of_travel_arrival, mode_of_transport_arrival, flight_vehicle_no_arrival,
						date_of_departure, mode_of_travel_departure, mode_of_transport_departure, flight_vehicle_no_departure,
						type_of_accommodation, province, district_area, sub_district, post_code, address, created_at
				 FROM travel_information WHERE id = ?`
	var depDate sql.NullTime
	var depTravel, depTransport, depFlight sql.NullString
	err := r.db.QueryRowContext(ctx, sel, id).Scan(
		&t.ID, &t.DateOfArrival, &t.CountryBoarded, &t.PurposeOfTravel,
		&t.ModeOfTravelArrival, &t.ModeOfTransportArrival, &t.FlightVehicleNoArrival,
		&depDate, &depTravel, &depTransport, &depFlight,
		&t.TypeOfAccommodation, &t.Province, &t.DistrictArea, &t.SubDistrict, &t.PostCode, &t.Address, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if depDate.Valid {
		d := depDate.Time.UTC()
		t.DateOfDeparture = &d
	}
	t.ModeOfTravelDeparture = nullableString(depTravel)
	t.ModeOfTransportDeparture = nullableString(depTransport)
	t.FlightVehicleNoDeparture = nullableString(depFlight)
	return nil
}

// nullableString converts a sql.NullString into a *string.
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
