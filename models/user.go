package models

// User is a registered account. It maps to the `users` table in SQLite.
// PasswordHash is never serialized.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password" json:"-"`
	Role         Role   `db:"role" json:"role"`
}

// Teacher is the public projection of a user with the teacher role.
type Teacher struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}
