package models

// Role distinguishes administrators, who see every task, from teachers, who see
// only the tasks assigned to them.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// ParseRole returns s as a Role. Matching is exact: the second result is false
// for anything other than "admin" or "teacher", including "Admin" or " teacher".
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
