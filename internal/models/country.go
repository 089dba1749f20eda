package models

// Continente is a row of the continentes reference table.
type Continente struct {
	ContinenteID     int64  `db:"continente_id" json:"continente_id"`
	NombreContinente string `db:"nombre_continente" json:"nombre_continente"`
}

// Pais is a row of the paises reference table.
type Pais struct {
	PaisID       int64  `db:"pais_id" json:"pais_id"`
	NombrePais   string `db:"nombre_pais" json:"nombre_pais"`
	ContinenteID int64  `db:"continente_id" json:"continente_id"`
}

// CreateContinenteRequest creates one continent.
type CreateContinenteRequest struct {
	NombreContinente string `json:"nombre_continente" validate:"required"`
}

// CreatePaisRequest creates one country.
type CreatePaisRequest struct {
	NombrePais   string `json:"nombre_pais" validate:"required"`
	ContinenteID int64  `json:"continente_id" validate:"required"`
}

// BatchContinentesRequest inserts several continents in one transaction.
type BatchContinentesRequest struct {
	Continentes []CreateContinenteRequest `json:"continentes" validate:"required,min=1,dive"`
}

// BatchPaisesRequest inserts several countries in one transaction.
type BatchPaisesRequest struct {
	Paises []CreatePaisRequest `json:"paises" validate:"required,min=1,dive"`
}

// BatchFailure records one rejected row of a batch insert.
type BatchFailure struct {
	Nombre string `json:"nombre"`
	Error  string `json:"error"`
}

// BatchResult collects the per-row outcome of a batch insert. The insert is
// committed only when at least one row succeeded.
type BatchResult struct {
	Exitosos []int64        `json:"exitosos"`
	Fallidos []BatchFailure `json:"fallidos"`
}
