package models

// Request represents a service request against a property.
type Request struct {
	ID          string `json:"_id"`
	PropertyID  string `json:"property_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email,omitempty"`
	RequestType string `json:"request_type"` // "Rent" or "Sale"
	Status      string `json:"status"`       // "Pending", "Approved", "Rejected"
}

// RequestInput is the payload for creating or updating a service request.
type RequestInput struct {
	PropertyID  string `json:"property_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email,omitempty"`
	RequestType string `json:"request_type"`
	Status      string `json:"status"`
}
