package models

import "time"

// Modulo is a course unit owned by one instructor. A module can only be
// deleted while it has no lessons.
type Modulo struct {
	ModuloID     int64      `db:"modulo_id" json:"modulo_id"`
	Nombre       string     `db:"nombre" json:"nombre"`
	Descripcion  *string    `db:"descripcion" json:"descripcion,omitempty"`
	InstructorID *int64     `db:"instructor_id" json:"instructor_id,omitempty"`
	Duracion     *int       `db:"duracion" json:"duracion,omitempty"`
	FechaInicio  *time.Time `db:"fecha_inicio" json:"fecha_inicio,omitempty"`
	FechaFin     *time.Time `db:"fecha_fin" json:"fecha_fin,omitempty"`
	Orden        int        `db:"orden" json:"orden"`
	Estado       string     `db:"estado" json:"estado"`
}

// LeccionResumen is the lesson summary nested in the accordion view.
type LeccionResumen struct {
	LeccionID   int64   `json:"leccion_id"`
	Titulo      string  `json:"titulo"`
	Descripcion *string `json:"descripcion,omitempty"`
}

// ModuloConLecciones groups a module with its lessons for the accordion view.
type ModuloConLecciones struct {
	ModuloID    int64            `json:"modulo_id"`
	Titulo      string           `json:"titulo"`
	Descripcion *string          `json:"descripcion,omitempty"`
	Lecciones   []LeccionResumen `json:"lecciones"`
}

// CreateModuloRequest creates a module.
type CreateModuloRequest struct {
	Nombre       string     `json:"nombre" validate:"required"`
	Descripcion  string     `json:"descripcion"`
	InstructorID int64      `json:"instructor_id" validate:"required"`
	Duracion     int        `json:"duracion"`
	FechaInicio  *time.Time `json:"fecha_inicio"`
	FechaFin     *time.Time `json:"fecha_fin"`
}

// UpdateModuloRequest mutates module fields.
type UpdateModuloRequest struct {
	Nombre      string     `json:"nombre" validate:"required"`
	Descripcion string     `json:"descripcion"`
	Duracion    int        `json:"duracion"`
	FechaInicio *time.Time `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin"`
}
