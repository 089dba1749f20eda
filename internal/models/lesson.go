package models

// Leccion belongs to exactly one module and carries an order position.
type Leccion struct {
	LeccionID int64   `db:"leccion_id" json:"leccion_id"`
	ModuloID  int64   `db:"modulo_id" json:"modulo_id"`
	Titulo    string  `db:"titulo_leccion" json:"titulo_leccion"`
	Contenido *string `db:"contenido" json:"contenido,omitempty"`
	Orden     int     `db:"orden" json:"orden"`
	Estado    string  `db:"estado" json:"estado"`
}

// LeccionDetail joins the lesson with its module and instructor names.
type LeccionDetail struct {
	LeccionID        int64   `db:"leccion_id" json:"leccion_id"`
	Titulo           string  `db:"titulo_leccion" json:"titulo_leccion"`
	Contenido        *string `db:"contenido" json:"contenido,omitempty"`
	ModuloID         int64   `db:"modulo_id" json:"modulo_id"`
	NombreModulo     string  `db:"nombre_modulo" json:"nombre_modulo"`
	NombreInstructor *string `db:"nombre_instructor" json:"nombre_instructor,omitempty"`
	Estado           string  `db:"estado" json:"estado"`
}

// CreateLeccionRequest creates a lesson inside a module.
type CreateLeccionRequest struct {
	Titulo    string `json:"titulo_leccion" validate:"required"`
	Contenido string `json:"contenido"`
	ModuloID  int64  `json:"modulo_id" validate:"required"`
	Orden     int    `json:"orden"`
}

// UpdateLeccionRequest mutates lesson fields.
type UpdateLeccionRequest struct {
	Titulo    string `json:"titulo_leccion" validate:"required"`
	Contenido string `json:"contenido"`
	ModuloID  int64  `json:"modulo_id" validate:"required"`
	Orden     int    `json:"orden"`
}
