package models

// Instructor extends a usuarios row with teaching fields.
type Instructor struct {
	InstructorID int64   `db:"instructor_id" json:"instructor_id"`
	UsuarioID    int64   `db:"usuario_id" json:"usuario_id"`
	Especialidad *string `db:"especialidad" json:"especialidad,omitempty"`
	Biografia    *string `db:"biografia" json:"biografia,omitempty"`
}

// InstructorDetail joins the instructor with the user identity.
type InstructorDetail struct {
	Instructor
	Nombre string `db:"nombre" json:"nombre"`
	Email  string `db:"email" json:"email"`
	Estado string `db:"estado" json:"estado"`
}

// CreateInstructorRequest links an existing user as instructor.
type CreateInstructorRequest struct {
	UsuarioID    int64  `json:"usuario_id" validate:"required"`
	Especialidad string `json:"especialidad"`
	Biografia    string `json:"biografia"`
}

// UpdateInstructorRequest mutates the teaching fields.
type UpdateInstructorRequest struct {
	Especialidad string `json:"especialidad"`
	Biografia    string `json:"biografia"`
}
