package models

// DateLayout is the calendar date format stored in tasks.date.
const DateLayout = "2006-01-02"

// Task is a dated piece of work assigned to exactly one teacher via TeacherID.
type Task struct {
	ID          int64  `db:"id" json:"id"`
	Description string `db:"description" json:"description"`
	Date        string `db:"date" json:"date"`
	TeacherID   int64  `db:"teacher_id" json:"teacher_id"`
}
