package models

import "strings"

// Role is the canonical enumeration of CRM user roles. The upstream API has
// been observed returning several spellings of the same role ("Super Admin",
// "superAdmin"); ParseRole folds them into one value so permission checks
// never string-compare raw API data.
type Role string

const (
	RoleSuperAdmin   Role = "Super Admin"
	RoleAdmin        Role = "Admin"
	RoleSalesManager Role = "Sales Manager"
	RoleBackOffice   Role = "Back Office"
	RoleBroker       Role = "Broker"
	RoleUnknown      Role = ""
)

// ParseRole normalizes a raw role string from the API into a canonical Role.
// Unrecognized values map to RoleUnknown, which holds no capabilities.
func ParseRole(raw string) Role {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	switch key {
	case "superadmin":
		return RoleSuperAdmin
	case "admin":
		return RoleAdmin
	case "salesmanager":
		return RoleSalesManager
	case "backoffice":
		return RoleBackOffice
	case "broker":
		return RoleBroker
	default:
		return RoleUnknown
	}
}

// Capability identifies an action or tab whose visibility is role-gated.
type Capability string

const (
	CapViewUsersTab     Capability = "users_tab"
	CapViewRequestsTab  Capability = "requests_tab"
	CapManageUsers      Capability = "manage_users"
	CapManageProperties Capability = "manage_properties"
	CapImportProperties Capability = "import_properties"
	CapExportProperties Capability = "export_properties"
	CapEditLeads        Capability = "edit_leads"
	CapDeleteLeads      Capability = "delete_leads"
	CapManageRequests   Capability = "manage_requests"
	CapViewRequestsCard Capability = "requests_card"
)

// capabilities is the static role → capability table consulted by the
// navigation shell and by each view's action controls. It is recomputed from
// the session role on every render and never persisted.
var capabilities = map[Capability][]Role{
	CapViewUsersTab:     {RoleSuperAdmin},
	CapViewRequestsTab:  {RoleSuperAdmin},
	CapManageUsers:      {RoleSuperAdmin},
	CapManageProperties: {RoleSuperAdmin},
	CapImportProperties: {RoleSuperAdmin},
	CapExportProperties: {RoleSuperAdmin},
	CapEditLeads:        {RoleSuperAdmin, RoleAdmin},
	CapDeleteLeads:      {RoleSuperAdmin, RoleAdmin},
	CapManageRequests:   {RoleSuperAdmin},
	CapViewRequestsCard: {RoleSuperAdmin},
}

// Can reports whether the role holds the given capability.
func (r Role) Can(cap Capability) bool {
	for _, allowed := range capabilities[cap] {
		if r == allowed {
			return true
		}
	}
	return false
}

// CanEditLead reports whether the role may edit a specific lead. Brokers may
// edit leads assigned to them even though they lack the blanket capability.
func (r Role) CanEditLead(userID, assignedTo string) bool {
	if r.Can(CapEditLeads) {
		return true
	}
	return r == RoleBroker && userID != "" && userID == assignedTo
}
