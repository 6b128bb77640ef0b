// Package validator checks the three sections of an arrival-card
// submission independently and converts the raw wire payload into
// normalized, strongly typed records.  Validation performs no I/O: the
// handler calls it before any persistence or rendering so a malformed
// submission leaves no trace.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	v10 "github.com/go-playground/validator/v10"

	"github.com/kritsada/arrival-card-service/internal/model"
)

// dateLayout is the wire format for all date fields.
const dateLayout = "2006-01-02"

// CreateRequest mirrors the body of POST /api/create.  Section names are
// the top-level JSON keys; field names inside each section are snake_case
// as submitted by the front end.
type CreateRequest struct {
	PersonalInfo PersonalInfoRequest `json:"personalInfo"`
	TripInfo     TripInfoRequest     `json:"tripInfo"`
	Health       HealthRequest       `json:"health"`
}

// PersonalInfoRequest carries the identity section.  Family name, first
// name and passport number are the hard requirements; middle name and
// visa number are genuinely optional and normalize to nil when blank.
type PersonalInfoRequest struct {
	FamilyName          string `json:"family_name" validate:"required"`
	FirstName           string `json:"first_name" validate:"required"`
	MiddleName          string `json:"middle_name"`
	PassportNo          string `json:"passport_no" validate:"required"`
	SelectedNationality string `json:"selected_nationality" validate:"required"`
	Occupation          string `json:"occupation" validate:"required"`
	Gender              string `json:"gender" validate:"required"`
	VisaNo              string `json:"visa_no"`
	SelectedCountry     string `json:"selected_country" validate:"required"`
	SelectedCity        string `json:"selected_city" validate:"required"`
	PhoneNoCode         string `json:"phone_no_code" validate:"required"`
	PhoneNo             string `json:"phone_no" validate:"required"`
	DateOfBirth         string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

// TripInfoRequest carries the trip and accommodation section.  The
// arrival leg is mandatory; the departure leg fields may all be absent.
type TripInfoRequest struct {
	DateOfArrival            string `json:"date_of_arrival" validate:"required,datetime=2006-01-02"`
	CountryBoarded           string `json:"country_boarded" validate:"required"`
	PurposeOfTravel          string `json:"purpose_of_travel" validate:"required"`
	ModeOfTravelArrival      string `json:"mode_of_travel_arrival" validate:"required"`
	ModeOfTransportArrival   string `json:"mode_of_transport_arrival" validate:"required"`
	FlightVehicleNoArrival   string `json:"flight_vehicle_no_arrival" validate:"required"`
	DateOfDeparture          string `json:"date_of_departure" validate:"omitempty,datetime=2006-01-02"`
	ModeOfTravelDeparture    string `json:"mode_of_travel_departure"`
	ModeOfTransportDeparture string `json:"mode_of_transport_departure"`
	FlightVehicleNoDeparture string `json:"flight_vehicle_no_departure"`
	TypeOfAccommodation      string `json:"type_of_accommodation" validate:"required"`
	Province                 string `json:"province" validate:"required"`
	DistrictArea             string `json:"district_area" validate:"required"`
	SubDistrict              string `json:"sub_district" validate:"required"`
	PostCode                 string `json:"post_code" validate:"required"`
	Address                  string `json:"address" validate:"required"`
}

// HealthRequest carries the health-declaration section.  At least one
// visited country is required; order is irrelevant for validation but is
// preserved for display on the rendered card.
type HealthRequest struct {
	CountriesVisited []string `json:"countries_visited" validate:"required,min=1,dive,required"`
}

// Errors maps section name -> field name -> violation messages.  It is
// serialized directly into the 400 response body.
type Errors map[string]map[string][]string

// NormalizedSubmission is the validated, typed form of a submission.
// Profile and Travel carry zero IDs until the persister fills them in.
type NormalizedSubmission struct {
	Profile          model.PersonalProfile
	Travel           model.TravelInformation
	CountriesVisited []string
}

var validate = newValidate()

// newValidate builds the validator instance with json tag names so error
// maps are keyed by wire field names rather than Go struct fields.
func newValidate() *v10.Validate {
	v := v10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks all three sections independently and returns either the
// normalized submission or a section-keyed error map.  A section with no
// violations does not appear in the map.
func Validate(req CreateRequest) (*NormalizedSubmission, Errors) {
	errs := Errors{}
	collect(errs, "personalInfo", validate.Struct(req.PersonalInfo))
	collect(errs, "tripInfo", validate.Struct(req.TripInfo))
	collect(errs, "health", validate.Struct(req.Health))
	if len(errs) > 0 {
		return nil, errs
	}
	return normalize(req), nil
}

// collect folds one section's validation result into the error map.
func collect(errs Errors, section string, err error) {
	if err == nil {
		return
	}
	verrs, ok := err.(v10.ValidationErrors)
	if !ok {
		// Non-field error (should not happen with plain structs); report
		// it under the section so the client still sees a 400.
		errs[section] = map[string][]string{"_": {err.Error()}}
		return
	}
	fields := map[string][]string{}
	for _, fe := range verrs {
		name := fieldName(fe)
		fields[name] = append(fields[name], message(name, fe))
	}
	errs[section] = fields
}

// fieldName strips the struct prefix and any slice index from the
// validator namespace, leaving the bare wire field name.
func fieldName(fe v10.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}
	return name
}

// message renders one violation as a human-readable string.
func message(name string, fe v10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", name)
	case "min":
		return fmt.Sprintf("%s must contain at least %s entry", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// normalize converts a request that already passed validation into typed
// records.  Date parsing cannot fail here because the datetime tag
// validated the format, but parse errors are still mapped to zero times
// rather than panics.
func normalize(req CreateRequest) *NormalizedSubmission {
	p := req.PersonalInfo
	t := req.TripInfo
	sub := &NormalizedSubmission{
		Profile: model.PersonalProfile{
			FamilyName:         p.FamilyName,
			FirstName:          p.FirstName,
			MiddleName:         optional(p.MiddleName),
			PassportNo:         p.PassportNo,
			Nationality:        p.SelectedNationality,
			Occupation:         p.Occupation,
			Gender:             p.Gender,
			VisaNo:             optional(p.VisaNo),
			CountryOfResidence: p.SelectedCountry,
			CityOfResidence:    p.SelectedCity,
			PhoneCode:          p.PhoneNoCode,
			PhoneNo:            p.PhoneNo,
			DateOfBirth:        parseDate(p.DateOfBirth),
		},
		Travel: model.TravelInformation{
			DateOfArrival:            parseDate(t.DateOfArrival),
			CountryBoarded:           t.CountryBoarded,
			PurposeOfTravel:          t.PurposeOfTravel,
			ModeOfTravelArrival:      t.ModeOfTravelArrival,
			ModeOfTransportArrival:   t.ModeOfTransportArrival,
			FlightVehicleNoArrival:   t.FlightVehicleNoArrival,
			ModeOfTravelDeparture:    optional(t.ModeOfTravelDeparture),
			ModeOfTransportDeparture: optional(t.ModeOfTransportDeparture),
			FlightVehicleNoDeparture: optional(t.FlightVehicleNoDeparture),
			TypeOfAccommodation:      t.TypeOfAccommodation,
			Province:                 t.Province,
			DistrictArea:             t.DistrictArea,
			SubDistrict:              t.SubDistrict,
			PostCode:                 t.PostCode,
			Address:                  t.Address,
		},
		CountriesVisited: append([]string(nil), req.Health.CountriesVisited...),
	}
	if t.DateOfDeparture != "" {
		d := parseDate(t.DateOfDeparture)
		sub.Travel.DateOfDeparture = &d
	}
	return sub
}

// optional maps an empty string to nil so absent fields persist as NULL,
// never as an empty string.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func parseDate(s string) time.Time {
	d, _ := time.ParseInLocation(dateLayout, s, time.UTC)
	return d
}
