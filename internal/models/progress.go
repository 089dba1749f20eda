package models

import "time"

// Lesson progress states. COMPLETADA is terminal.
const (
	LessonInProgress = "EN_PROGRESO"
	LessonCompleted  = "COMPLETADA"
)

// Module progress states, derived from lesson progress.
const (
	ModuleInProgress = "EN_PROGRESO"
	ModuleCompleted  = "COMPLETADO"
)

// LessonProgress tracks one student inside one lesson. At most one row may
// exist per (alumno, leccion) pair.
type LessonProgress struct {
	ProgresoLeccionID int64      `db:"progreso_leccion_id" json:"progreso_leccion_id"`
	AlumnoID          int64      `db:"alumno_id" json:"alumno_id"`
	LeccionID         int64      `db:"leccion_id" json:"leccion_id"`
	TotalPreguntas    int        `db:"total_preguntas" json:"total_preguntas"`
	TotalRespondidas  int        `db:"total_preguntas_respondidas" json:"total_preguntas_respondidas"`
	UltimaPregunta    *int64     `db:"ultima_pregunta_respondida" json:"ultima_pregunta_respondida,omitempty"`
	Estado            string     `db:"estado" json:"estado"`
	FechaInicio       time.Time  `db:"fecha_inicio" json:"fecha_inicio"`
	FechaCompletado   *time.Time `db:"fecha_completado" json:"fecha_completado,omitempty"`
}

// ModuleProgress is the derived per-(student, module) aggregate. It is
// recomputed by the progress tracker and never authored by clients.
type ModuleProgress struct {
	ProgresoModuloID     int64      `db:"progreso_modulo_id" json:"progreso_modulo_id"`
	AlumnoID             int64      `db:"alumno_id" json:"alumno_id"`
	ModuloID             int64      `db:"modulo_id" json:"modulo_id"`
	LeccionesCompletadas int        `db:"lecciones_completadas" json:"lecciones_completadas"`
	TotalLecciones       int        `db:"total_lecciones" json:"total_lecciones"`
	Estado               string     `db:"estado" json:"estado"`
	FechaCompletado      *time.Time `db:"fecha_completado" json:"fecha_completado,omitempty"`
}

// ProgressRow is the cross-student projection joining student, module and
// lesson context.
type ProgressRow struct {
	ProgresoLeccionID int64      `db:"progreso_leccion_id" json:"progreso_leccion_id"`
	AlumnoID          int64      `db:"alumno_id" json:"alumno_id"`
	NombreAlumno      string     `db:"nombre_alumno" json:"nombre_alumno"`
	ModuloID          int64      `db:"modulo_id" json:"modulo_id"`
	NombreModulo      string     `db:"nombre_modulo" json:"nombre_modulo"`
	LeccionID         int64      `db:"leccion_id" json:"leccion_id"`
	TituloLeccion     string     `db:"titulo_leccion" json:"titulo_leccion"`
	TotalRespondidas  int        `db:"total_preguntas_respondidas" json:"total_preguntas_respondidas"`
	TotalPreguntas    int        `db:"total_preguntas" json:"total_preguntas"`
	Estado            string     `db:"estado" json:"estado"`
	FechaInicio       time.Time  `db:"fecha_inicio" json:"fecha_inicio"`
	FechaCompletado   *time.Time `db:"fecha_completado" json:"fecha_completado,omitempty"`
}

// StudentProgressRow is the per-student projection. The module aggregate
// columns come from a LEFT JOIN and stay null until the module progress row
// exists.
type StudentProgressRow struct {
	ProgresoLeccionID    int64      `db:"progreso_leccion_id" json:"progreso_leccion_id"`
	ModuloID             int64      `db:"modulo_id" json:"modulo_id"`
	NombreModulo         string     `db:"nombre_modulo" json:"nombre_modulo"`
	LeccionID            int64      `db:"leccion_id" json:"leccion_id"`
	TituloLeccion        string     `db:"titulo_leccion" json:"titulo_leccion"`
	TotalRespondidas     int        `db:"total_preguntas_respondidas" json:"total_preguntas_respondidas"`
	TotalPreguntas       int        `db:"total_preguntas" json:"total_preguntas"`
	Estado               string     `db:"estado" json:"estado"`
	FechaInicio          time.Time  `db:"fecha_inicio" json:"fecha_inicio"`
	FechaCompletado      *time.Time `db:"fecha_completado" json:"fecha_completado,omitempty"`
	LeccionesCompletadas *int       `db:"lecciones_completadas_modulo" json:"lecciones_completadas_modulo,omitempty"`
	TotalLecciones       *int       `db:"total_lecciones_modulo" json:"total_lecciones_modulo,omitempty"`
	EstadoModulo         *string    `db:"estado_modulo" json:"estado_modulo,omitempty"`
}

// StartProgressRequest opens a lesson for a student.
type StartProgressRequest struct {
	AlumnoID       int64 `json:"alumno_id" validate:"required"`
	LeccionID      int64 `json:"leccion_id" validate:"required"`
	TotalPreguntas int   `json:"total_preguntas" validate:"required,min=1"`
}

// UpdateProgressRequest records an answer submission. Estado is accepted for
// wire compatibility with older clients but completion is recomputed
// server-side from the answered count.
type UpdateProgressRequest struct {
	TotalRespondidas int    `json:"total_preguntas_respondidas" validate:"min=0"`
	UltimaPregunta   *int64 `json:"ultima_pregunta_respondida"`
	Estado           string `json:"estado"`
}
