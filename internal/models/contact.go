package models

// Contact is a demo-request submission from the public marketing site.
type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	CompanySize string `json:"company_size,omitempty"`
	Country     string `json:"country,omitempty"`
}

// SignupInput is the payload for the public signup endpoint.
type SignupInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Type         string `json:"type"`          // "individual" or "company"
	Plan         string `json:"plan"`          // "free", "pro", "enterprise"
	BillingCycle string `json:"billingCycle"`  // "monthly" or "yearly"
}
