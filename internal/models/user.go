package models

// User represents a CRM user account as returned by the remote API.
type User struct {
	ID             string      `json:"_id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Role           string      `json:"role"`
	Permissions    Permissions `json:"permissions"`
	AssignedCities []string    `json:"assigned_cities,omitempty"`
	AssignedAreas  []string    `json:"assigned_areas,omitempty"`
}

// Permissions is the per-user action flag set carried on user records.
type Permissions struct {
	View   bool `json:"view"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// CanonicalRole returns the normalized role for permission checks.
func (u *User) CanonicalRole() Role {
	if u == nil {
		return RoleUnknown
	}
	return ParseRole(u.Role)
}

// UserInput is the payload for creating or updating a user.
type UserInput struct {
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Password       string      `json:"password,omitempty"`
	Role           string      `json:"role"`
	Permissions    Permissions `json:"permissions"`
	AssignedCities []string    `json:"assigned_cities,omitempty"`
	AssignedAreas  []string    `json:"assigned_areas,omitempty"`
}
