package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/evodia-api/internal/domain"
)

// isUndefinedTable verifica si un error es de tabla inexistente (42P01).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" // undefined_table
	}
	return false
}

// mapErr traduce errores de PostgreSQL a errores de dominio.
func mapErr(table string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%w: %s (ejecute las migraciones)", domain.ErrTableNotFound, table)
	}
	return err
}
