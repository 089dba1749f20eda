package models

import "time"

// Alumno is the 1:1 student extension of a usuarios row.
type Alumno struct {
	AlumnoID      int64     `db:"alumno_id" json:"alumno_id"`
	UsuarioID     *int64    `db:"usuario_id" json:"usuario_id,omitempty"`
	Nombre        string    `db:"nombre" json:"nombre"`
	Email         string    `db:"email" json:"email"`
	Telefono      *string   `db:"telefono" json:"telefono,omitempty"`
	PaisID        *int64    `db:"pais_id" json:"pais_id,omitempty"`
	Estado        string    `db:"estado" json:"estado"`
	FechaRegistro time.Time `db:"fecha_registro" json:"fecha_registro"`
}

// AlumnoDetail is the listing projection joined with the country name.
type AlumnoDetail struct {
	Alumno
	NombrePais *string `db:"nombre_pais" json:"nombre_pais,omitempty"`
}

// AlumnoPerfil is the profile view looked up by usuario id.
type AlumnoPerfil struct {
	AlumnoID      int64     `db:"alumno_id" json:"alumno_id"`
	Nombre        string    `db:"nombre" json:"nombre"`
	Email         string    `db:"email" json:"email"`
	Telefono      *string   `db:"telefono" json:"telefono,omitempty"`
	PaisID        *int64    `db:"pais_id" json:"pais_id,omitempty"`
	NombrePais    *string   `db:"nombre_pais" json:"nombre_pais,omitempty"`
	FechaRegistro time.Time `db:"fecha_registro" json:"fecha_registro"`
	Estado        string    `db:"estado" json:"estado"`
}

// AlumnoStats aggregates the admin dashboard counters. Counts default to
// zero when no rows match.
type AlumnoStats struct {
	Total       int `db:"total" json:"total"`
	Activos     int `db:"activos" json:"activos"`
	Inactivos   int `db:"inactivos" json:"inactivos"`
	TotalPaises int `db:"total_paises" json:"total_paises"`
}

// PaisDistribution is one bucket of the students-per-country aggregate.
type PaisDistribution struct {
	Pais     string `db:"pais" json:"pais"`
	Cantidad int    `db:"cantidad" json:"cantidad"`
}

// CreateAlumnoRequest creates a student record without a linked user.
type CreateAlumnoRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Telefono string `json:"telefono"`
	PaisID   int64  `json:"pais_id" validate:"required"`
}

// UpdateAlumnoRequest mutates a student; nombre/email/pais are mirrored to
// the linked usuarios row when one exists.
type UpdateAlumnoRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Telefono string `json:"telefono"`
	PaisID   int64  `json:"pais_id" validate:"required"`
}
