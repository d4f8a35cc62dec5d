package models

// Property represents a managed property record from the CRM.
type Property struct {
	ID               string  `json:"_id"`
	UnitNumber       string  `json:"unit_number"`
	Name             string  `json:"name"`
	Telephone        string  `json:"telephone"`
	SecondaryPhone   string  `json:"secondary_phone,omitempty"`
	Email            string  `json:"email,omitempty"`
	Area             string  `json:"area"`
	BuildingName     string  `json:"building_name,omitempty"`
	Status           string  `json:"status"`
	ActualArea       float64 `json:"actual_area,omitempty"`
	BalconyArea      string  `json:"balcony_area,omitempty"`
	ParkingNumber    string  `json:"parking_number,omitempty"`
	Floor            string  `json:"floor,omitempty"`
	RoomsDescription string  `json:"rooms_description,omitempty"`
	RentPrice        float64 `json:"rent_price,omitempty"`
	SalePrice        float64 `json:"sale_price,omitempty"`
	Payments         string  `json:"payments,omitempty"`
	ReleasingDate    string  `json:"releasing_date,omitempty"`
}

// PropertyInput is the payload for creating or updating a property. It
// carries the same field set as Property minus the server-assigned id.
type PropertyInput struct {
	UnitNumber       string  `json:"unit_number"`
	Name             string  `json:"name"`
	Telephone        string  `json:"telephone"`
	SecondaryPhone   string  `json:"secondary_phone,omitempty"`
	Email            string  `json:"email,omitempty"`
	Area             string  `json:"area"`
	BuildingName     string  `json:"building_name,omitempty"`
	Status           string  `json:"status"`
	ActualArea       float64 `json:"actual_area,omitempty"`
	BalconyArea      string  `json:"balcony_area,omitempty"`
	ParkingNumber    string  `json:"parking_number,omitempty"`
	Floor            string  `json:"floor,omitempty"`
	RoomsDescription string  `json:"rooms_description,omitempty"`
	RentPrice        float64 `json:"rent_price,omitempty"`
	SalePrice        float64 `json:"sale_price,omitempty"`
	Payments         string  `json:"payments,omitempty"`
	ReleasingDate    string  `json:"releasing_date,omitempty"`
}
