package model

import "time"

// TravelInformation records the trip and accommodation section of a
// submission as stored in the `travel_information` table.  The arrival leg
// is always present; the departure leg is nullable as a group because many
// travellers have no confirmed onward journey at arrival time.
//
// Fields:
//  ID                       – primary key identifier.
//  DateOfArrival            – arrival date (required).
//  CountryBoarded           – country where the traveller boarded.
//  PurposeOfTravel          – declared purpose (tourism, business, ...).
//  ModeOfTravelArrival      – arrival travel mode (air, land, sea).
//  ModeOfTransportArrival   – arrival transport kind (airplane, bus, ...).
//  FlightVehicleNoArrival   – arrival flight or vehicle number.
//  DateOfDeparture          – departure date, if known.
//  ModeOfTravelDeparture    – departure travel mode, if known.
//  ModeOfTransportDeparture – departure transport kind, if known.
//  FlightVehicleNoDeparture – departure flight or vehicle number, if known.
//  TypeOfAccommodation      – accommodation category (hotel, hostel, ...).
//  Province                 – accommodation province.
//  DistrictArea             – accommodation district.
//  SubDistrict              – accommodation sub-district.
//  PostCode                 – accommodation postal code.
//  Address                  – free-form street address.
//  CreatedAt                – timestamp of insertion.
type TravelInformation struct {
	ID                       uint64     `json:"id"`                          // travel_information.id
	DateOfArrival            time.Time  `json:"date_of_arrival"`             // travel_information.date_of_arrival
	CountryBoarded           string     `json:"country_boarded"`             // travel_information.country_boarded
	PurposeOfTravel          string     `json:"purpose_of_travel"`           // travel_information.purpose_of_travel
	ModeOfTravelArrival      string     `json:"mode_of_travel_arrival"`      // travel_information.mode_of_travel_arrival
	ModeOfTransportArrival   string     `json:"mode_of_transport_arrival"`   // travel_information.mode_of_transport_arrival
	FlightVehicleNoArrival   string     `json:"flight_vehicle_no_arrival"`   // travel_information.flight_vehicle_no_arrival
	DateOfDeparture          *time.Time `json:"date_of_departure"`           // travel_information.date_of_departure (nullable)
	ModeOfTravelDeparture    *string    `json:"mode_of_travel_departure"`    // travel_information.mode_of_travel_departure (nullable)
	ModeOfTransportDeparture *string    `json:"mode_of_transport_departure"` // travel_information.mode_of_transport_departure (nullable)
	FlightVehicleNoDeparture *string    `json:"flight_vehicle_no_departure"` // travel_information.flight_vehicle_no_departure (nullable)
	TypeOfAccommodation      string     `json:"type_of_accommodation"`       // travel_information.type_of_accommodation
	Province                 string     `json:"province"`                    // travel_information.province
	DistrictArea             string     `json:"district_area"`               // travel_information.district_area
	SubDistrict              string     `json:"sub_district"`                // travel_information.sub_district
	PostCode                 string     `json:"post_code"`                   // travel_information.post_code
	Address                  string     `json:"address"`                     // travel_information.address
	CreatedAt                time.Time  `json:"created_at"`                  // travel_information.created_at
}
