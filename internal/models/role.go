package models

// Roles carried in the identity token.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)
