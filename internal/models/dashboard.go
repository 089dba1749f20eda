package models

// AdminDashboard bundles the admin analytics read-models.
type AdminDashboard struct {
	Alumnos AlumnoStats        `json:"alumnos"`
	PorPais []PaisDistribution `json:"por_pais"`
}
