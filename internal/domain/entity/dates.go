package entity

// Formatos de fecha en las tablas. Las filas antiguas pueden traer solo la fecha.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)
