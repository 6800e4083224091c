package models

// Role is the closed set of access levels a user can hold. The database keeps
// the is_admin flag; code goes through Role so adding a level later touches one
// place.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CanManageDirectory reports whether the role may create, update, or delete
// directory records and read activity logs.
func (r Role) CanManageDirectory() bool {
	return r == RoleAdmin
}
