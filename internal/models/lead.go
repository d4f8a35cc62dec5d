package models

// Lead represents a sales lead from the CRM. Leads arrive both from the
// authenticated console and from the public lead-capture form on the
// marketing site.
type Lead struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Status     string `json:"status,omitempty"`
	Source     string `json:"source,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// LeadInput is the payload for creating or updating a lead.
type LeadInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Status     string `json:"status,omitempty"`
	Source     string `json:"source,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}
