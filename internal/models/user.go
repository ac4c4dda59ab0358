package models

// Role discriminates the three account kinds. A Principal carries only the
// fields relevant to its role; there is no shared user document.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// Principal is the authenticated identity attached to a request. ID is the
// database identity hex for students/faculty and the fixed literal "admin"
// for the administrator. ClassName is set only for students, FacultyID only
// for faculty.
type Principal struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Name      string `json:"name"`
	ClassName string `json:"className,omitempty"`
	FacultyID string `json:"facultyId,omitempty"`
}

// LoginRequest is role-discriminated: students log in with their register
// number, faculty with their staff code, the admin with the configured
// username.
type LoginRequest struct {
	Role       Role   `json:"role" validate:"required,oneof=admin student faculty"`
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
