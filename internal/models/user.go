package models

import "time"

// Role is the enumerated RBAC tag. Values are stored lowercased and the
// role guard relies on that normalisation.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "estudiante"
)

// Record states shared by usuarios, alumnos and the course tables.
const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// Pagination carries listing metadata in the response envelope.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// RoleRecord is a row of the roles reference table.
type RoleRecord struct {
	RolID     int64  `db:"rol_id" json:"rol_id"`
	NombreRol string `db:"nombre_rol" json:"nombre_rol"`
}

// User represents a row of the usuarios table. Users are never hard-deleted;
// estado flips to INACTIVO instead.
type User struct {
	UsuarioID         int64      `db:"usuario_id" json:"usuario_id"`
	Nombre            string     `db:"nombre" json:"nombre"`
	Email             string     `db:"email" json:"email"`
	PasswordHash      string     `db:"password_hash" json:"-"`
	RolID             int64      `db:"rol_id" json:"rol_id"`
	PaisID            *int64     `db:"pais_id" json:"pais_id,omitempty"`
	Estado            string     `db:"estado" json:"estado"`
	ResetToken        *string    `db:"reset_token" json:"-"`
	ResetTokenExpires *time.Time `db:"reset_token_expires" json:"-"`
	FechaRegistro     time.Time  `db:"fecha_registro" json:"fecha_registro"`
}

// UserWithRole is a usuarios row joined with its role name, as the login
// flow needs it.
type UserWithRole struct {
	User
	NombreRol string `db:"nombre_rol" json:"nombre_rol"`
}

// UserDetail is the user listing projection joined with role and country.
type UserDetail struct {
	UsuarioID  int64   `db:"usuario_id" json:"usuario_id"`
	Nombre     string  `db:"nombre" json:"nombre"`
	Email      string  `db:"email" json:"email"`
	Estado     string  `db:"estado" json:"estado"`
	NombreRol  string  `db:"nombre_rol" json:"nombre_rol"`
	NombrePais *string `db:"nombre_pais" json:"nombre_pais,omitempty"`
}

// UpdateUserRequest mutates a user's profile fields.
type UpdateUserRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	PaisID int64  `json:"pais_id" validate:"required"`
}
