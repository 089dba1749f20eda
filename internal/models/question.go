package models

// Pregunta belongs to a lesson and carries an order position.
type Pregunta struct {
	PreguntaID      int64   `db:"pregunta_id" json:"pregunta_id"`
	LeccionID       int64   `db:"leccion_id" json:"leccion_id"`
	ContenidoPrevio *string `db:"contenido_previo" json:"contenido_previo,omitempty"`
	Pregunta        string  `db:"pregunta" json:"pregunta"`
	Orden           int     `db:"orden" json:"orden"`
	Estado          string  `db:"estado" json:"estado"`
}

// PreguntaDetail joins the question with its lesson and module for the
// grouped listing.
type PreguntaDetail struct {
	Pregunta
	TituloLeccion string `db:"titulo_leccion" json:"titulo_leccion"`
	ModuloID      int64  `db:"modulo_id" json:"modulo_id"`
	NombreModulo  string `db:"nombre_modulo" json:"nombre_modulo"`
}

// CreatePreguntaRequest creates a question inside a lesson.
type CreatePreguntaRequest struct {
	LeccionID       int64  `json:"leccion_id" validate:"required"`
	ContenidoPrevio string `json:"contenido_previo"`
	Pregunta        string `json:"pregunta" validate:"required"`
	Orden           int    `json:"orden"`
}

// UpdatePreguntaRequest mutates question fields.
type UpdatePreguntaRequest struct {
	ContenidoPrevio string `json:"contenido_previo"`
	Pregunta        string `json:"pregunta" validate:"required"`
	Orden           int    `json:"orden"`
}
