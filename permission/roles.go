package permission

// Role is a closed identity category determining default capabilities.
// A session carries exactly one role for its entire lifetime; changing a
// user's role requires a new session.
type Role string

const (
	// RoleGuest is the role of any unauthenticated browsing context.
	RoleGuest Role = "guest"
	// RoleClient is an exported constant or variable used by the authorization core.
	RoleClient Role = "client"
	// RoleBartender is an exported constant or variable used by the authorization core.
	RoleBartender Role = "bartender"
	// RoleManager is an exported constant or variable used by the authorization core.
	RoleManager Role = "manager"
	// RoleAdmin is an exported constant or variable used by the authorization core.
	RoleAdmin Role = "admin"
)

// Permission is a named boolean capability. Permissions are not stored
// independently; they exist only as matrix entries.
type Permission string

const (
	// PermViewDashboard is an exported constant or variable used by the authorization core.
	PermViewDashboard Permission = "viewDashboard"
	// PermManageCourses is an exported constant or variable used by the authorization core.
	PermManageCourses Permission = "manageCourses"
	// PermManageBookings is an exported constant or variable used by the authorization core.
	PermManageBookings Permission = "manageBookings"
	// PermManageUsers is an exported constant or variable used by the authorization core.
	PermManageUsers Permission = "manageUsers"
	// PermAccessAdminPanel is an exported constant or variable used by the authorization core.
	PermAccessAdminPanel Permission = "accessAdminPanel"
)

// AllRoles returns the closed role set in declaration order.
func AllRoles() []Role {
	return []Role{RoleGuest, RoleClient, RoleBartender, RoleManager, RoleAdmin}
}

// AllPermissions returns the closed permission set in declaration order.
func AllPermissions() []Permission {
	return []Permission{
		PermViewDashboard,
		PermManageCourses,
		PermManageBookings,
		PermManageUsers,
		PermAccessAdminPanel,
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleClient, RoleBartender, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// Valid reports whether p is a member of the closed permission set.
func (p Permission) Valid() bool {
	switch p {
	case PermViewDashboard, PermManageCourses, PermManageBookings, PermManageUsers, PermAccessAdminPanel:
		return true
	default:
		return false
	}
}
