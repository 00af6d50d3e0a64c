package dto

// ErrorResponse cuerpo de error HTTP. Details lleva datos para que el operador corrija la
// entrada (material faltante, ítems omitidos, id de operación en commits parciales).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// DateRangeQuery filtro de reportes (?from=2026-01-01&to=2026-01-31), ambos inclusive.
type DateRangeQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// UpdateRowsRequest body de PUT /api/sales y PUT /api/purchases: filas editadas, cada una con
// su ID y solo las columnas que cambian.
type UpdateRowsRequest struct {
	Rows []map[string]string `json:"rows"`
}

// UpdateRowsResponse cantidad de filas modificadas.
type UpdateRowsResponse struct {
	Updated int `json:"updated"`
}
