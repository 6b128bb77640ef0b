package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateRequest {
	return CreateRequest{
		PersonalInfo: PersonalInfoRequest{
			FamilyName:          "Doe",
			FirstName:           "Jane",
			PassportNo:          "X1234567",
			SelectedNationality: "US",
			Occupation:          "Engineer",
			Gender:              "F",
			SelectedCountry:     "US",
			SelectedCity:        "NYC",
			PhoneNoCode:         "1",
			PhoneNo:             "5551234",
			DateOfBirth:         "1990-05-01",
		},
		TripInfo: TripInfoRequest{
			DateOfArrival:          "2024-06-01",
			CountryBoarded:         "US",
			PurposeOfTravel:        "Tourism",
			ModeOfTravelArrival:    "Air",
			ModeOfTransportArrival: "Airplane",
			FlightVehicleNoArrival: "TG123",
			TypeOfAccommodation:    "Hotel",
			Province:               "Bangkok",
			DistrictArea:           "Pathumwan",
			SubDistrict:            "Lumphini",
			PostCode:               "10330",
			Address:                "123 Road",
		},
		Health: HealthRequest{CountriesVisited: []string{"US"}},
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	sub, errs := Validate(validRequest())
	require.Nil(t, errs)
	require.NotNil(t, sub)

	assert.Equal(t, "Doe", sub.Profile.FamilyName)
	assert.Equal(t, time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), sub.Profile.DateOfBirth)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), sub.Travel.DateOfArrival)
	assert.Equal(t, []string{"US"}, sub.CountriesVisited)

	// Absent optionals normalize to nil, never to empty strings.
	assert.Nil(t, sub.Profile.MiddleName)
	assert.Nil(t, sub.Profile.VisaNo)
	assert.Nil(t, sub.Travel.DateOfDeparture)
	assert.Nil(t, sub.Travel.ModeOfTravelDeparture)
	assert.Nil(t, sub.Travel.ModeOfTransportDeparture)
	assert.Nil(t, sub.Travel.FlightVehicleNoDeparture)
}

func TestValidateMissingPersonalFields(t *testing.T) {
	req := validRequest()
	req.PersonalInfo.FamilyName = ""
	req.PersonalInfo.PassportNo = ""

	sub, errs := Validate(req)
	require.Nil(t, sub)
	require.Contains(t, errs, "personalInfo")
	require.Contains(t, errs["personalInfo"], "family_name")
	require.Contains(t, errs["personalInfo"], "passport_no")
	assert.Contains(t, errs["personalInfo"]["family_name"][0], "required")

	// Sections validate independently: the trip section was fine.
	assert.NotContains(t, errs, "tripInfo")
	assert.NotContains(t, errs, "health")
}

func TestValidateEmptyCountryList(t *testing.T) {
	req := validRequest()
	req.Health.CountriesVisited = nil

	sub, errs := Validate(req)
	require.Nil(t, sub)
	require.Contains(t, errs, "health")
	require.Contains(t, errs["health"], "countries_visited")
}

func TestValidateBadDateFormat(t *testing.T) {
	req := validRequest()
	req.PersonalInfo.DateOfBirth = "05/01/1990"

	sub, errs := Validate(req)
	require.Nil(t, sub)
	require.Contains(t, errs["personalInfo"], "date_of_birth")
	assert.Contains(t, errs["personalInfo"]["date_of_birth"][0], "YYYY-MM-DD")
}

func TestValidateCollectsAllSections(t *testing.T) {
	req := validRequest()
	req.PersonalInfo.FirstName = ""
	req.TripInfo.DateOfArrival = ""
	req.Health.CountriesVisited = []string{}

	sub, errs := Validate(req)
	require.Nil(t, sub)
	assert.Contains(t, errs, "personalInfo")
	assert.Contains(t, errs, "tripInfo")
	assert.Contains(t, errs, "health")
}

func TestValidateDepartureLegNormalizes(t *testing.T) {
	req := validRequest()
	req.TripInfo.DateOfDeparture = "2024-06-10"
	req.TripInfo.ModeOfTravelDeparture = "Air"
	req.TripInfo.ModeOfTransportDeparture = "Airplane"
	req.TripInfo.FlightVehicleNoDeparture = "TG456"

	sub, errs := Validate(req)
	require.Nil(t, errs)
	require.NotNil(t, sub.Travel.DateOfDeparture)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), *sub.Travel.DateOfDeparture)
	require.NotNil(t, sub.Travel.FlightVehicleNoDeparture)
	assert.Equal(t, "TG456", *sub.Travel.FlightVehicleNoDeparture)
}
