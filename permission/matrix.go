package permission

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRole is an exported constant or variable used by the authorization core.
	ErrUnknownRole = errors.New("unknown role")
	// ErrUnknownPermission is an exported constant or variable used by the authorization core.
	ErrUnknownPermission = errors.New("unknown permission")
	// ErrMissingRow is returned by NewMatrix when a role has no row.
	ErrMissingRow = errors.New("matrix row missing for role")
	// ErrPartialRow is returned by NewMatrix when a row does not cover every permission.
	ErrPartialRow = errors.New("matrix row partially populated")
)

// Row is the full permission record for one role. A valid row carries an
// explicit entry for every permission in the closed set.
type Row map[Permission]bool

// Matrix is the total mapping from every [Role] to a full [Row].
//
// Matrix instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Matrix struct {
	rows map[Role]map[Permission]bool
}

// NewMatrix validates rows for totality and returns a frozen [Matrix].
//
// Every role of the closed set must have a row, every row must carry an
// entry for every permission of the closed set, and no unknown role or
// permission key may appear. Any violation is a construction error.
func NewMatrix(rows map[Role]Row) (*Matrix, error) {
	frozen := make(map[Role]map[Permission]bool, len(rows))

	for role, row := range rows {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}

		copied := make(map[Permission]bool, len(row))
		for perm, granted := range row {
			if !perm.Valid() {
				return nil, fmt.Errorf("%w: %q in row %q", ErrUnknownPermission, perm, role)
			}
			copied[perm] = granted
		}

		for _, perm := range AllPermissions() {
			if _, ok := copied[perm]; !ok {
				return nil, fmt.Errorf("%w: role %q missing %q", ErrPartialRow, role, perm)
			}
		}

		frozen[role] = copied
	}

	for _, role := range AllRoles() {
		if _, ok := frozen[role]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingRow, role)
		}
	}

	return &Matrix{rows: frozen}, nil
}

// DefaultMatrix returns the matrix shipped with the Legends platform.
//
// The guest row grants nothing. The manager and admin rows are identical;
// the duplication is carried over from the production matrix as observed
// and must not be collapsed into a hierarchy.
func DefaultMatrix() *Matrix {
	m, err := NewMatrix(map[Role]Row{
		RoleGuest: {
			PermViewDashboard:    false,
			PermManageCourses:    false,
			PermManageBookings:   false,
			PermManageUsers:      false,
			PermAccessAdminPanel: false,
		},
		RoleClient: {
			PermViewDashboard:    true,
			PermManageCourses:    false,
			PermManageBookings:   true,
			PermManageUsers:      false,
			PermAccessAdminPanel: false,
		},
		RoleBartender: {
			PermViewDashboard:    true,
			PermManageCourses:    true,
			PermManageBookings:   true,
			PermManageUsers:      false,
			PermAccessAdminPanel: false,
		},
		RoleManager: {
			PermViewDashboard:    true,
			PermManageCourses:    true,
			PermManageBookings:   true,
			PermManageUsers:      true,
			PermAccessAdminPanel: true,
		},
		RoleAdmin: {
			PermViewDashboard:    true,
			PermManageCourses:    true,
			PermManageBookings:   true,
			PermManageUsers:      true,
			PermAccessAdminPanel: true,
		},
	})
	if err != nil {
		// The default rows are compile-time constants; a failure here is a
		// defect in this file, not a runtime condition.
		panic("permission: default matrix invalid: " + err.Error())
	}
	return m
}

// Check reports whether role is granted perm.
//
// An unrecognized role or permission is a programming defect and is reported
// as [ErrUnknownRole] or [ErrUnknownPermission] rather than a silent deny.
func (m *Matrix) Check(role Role, perm Permission) (bool, error) {
	row, ok := m.rows[role]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	granted, ok := row[perm]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPermission, perm)
	}

	return granted, nil
}

// MustCheck is [Matrix.Check] for call sites whose inputs are compile-time
// constants of the closed sets. It panics on an unknown role or permission.
func (m *Matrix) MustCheck(role Role, perm Permission) bool {
	granted, err := m.Check(role, perm)
	if err != nil {
		panic("permission: " + err.Error())
	}
	return granted
}

// Grants returns the permissions granted to role, in declaration order.
func (m *Matrix) Grants(role Role) ([]Permission, error) {
	row, ok := m.rows[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	var perms []Permission
	for _, perm := range AllPermissions() {
		if row[perm] {
			perms = append(perms, perm)
		}
	}
	return perms, nil
}
