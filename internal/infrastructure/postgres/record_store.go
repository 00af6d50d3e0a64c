package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

var _ repository.RecordStore = (*RecordStore)(nil)

// RecordStore implementación de repository.RecordStore sobre PostgreSQL: una tabla SQL por
// tabla de registros, con row_id como orden de inserción.
type RecordStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewRecordStore construye el adaptador. El pool no se cierra aquí.
func NewRecordStore(pool *pgxpool.Pool, log *logger.Logger) *RecordStore {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordStore{pool: pool, log: log.WithComponent("postgres")}
}

// ReadAll lee todas las filas en orden de inserción.
func (s *RecordStore) ReadAll(ctx context.Context, table string) ([]repository.Row, error) {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return nil, err
	}
	return readAll(ctx, s.pool, schema)
}

// Append agrega una fila.
func (s *RecordStore) Append(ctx context.Context, table string, row repository.Row) error {
	return s.AppendBatch(ctx, table, []repository.Row{row})
}

// AppendBatch agrega las filas en una sola transacción.
func (s *RecordStore) AppendBatch(ctx context.Context, table string, rows []repository.Row) error {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	batch, err := insertBatch(schema, rows)
	if err != nil {
		return err
	}
	return withTx(ctx, s.pool, func(q Querier) error {
		return sendBatch(ctx, q, schema.Name, batch)
	})
}

// OverwriteAll borra y reinserta las filas de la tabla dentro de una transacción.
func (s *RecordStore) OverwriteAll(ctx context.Context, table string, rows []repository.Row) error {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return err
	}
	batch, err := insertBatch(schema, rows)
	if err != nil {
		return err
	}
	err = withTx(ctx, s.pool, func(q Querier) error {
		if _, err := q.Exec(ctx, deleteAllSQL(schema)); err != nil {
			return mapErr(schema.Name, fmt.Errorf("vaciar %s: %w", schema.Name, err))
		}
		return sendBatch(ctx, q, schema.Name, batch)
	})
	if err != nil {
		return err
	}
	s.log.Debug().Str("table", table).Int("rows", len(rows)).Msg("tabla reescrita")
	return nil
}

// EnsureTables aplica las migraciones pendientes.
func (s *RecordStore) EnsureTables(ctx context.Context) error {
	return Migrate(ctx, s.pool, s.log)
}

func readAll(ctx context.Context, q Querier, schema repository.TableSchema) ([]repository.Row, error) {
	rows, err := q.Query(ctx, selectAllSQL(schema))
	if err != nil {
		return nil, mapErr(schema.Name, fmt.Errorf("leer %s: %w", schema.Name, err))
	}
	defer rows.Close()

	out := []repository.Row{}
	for rows.Next() {
		texts := make([]string, len(schema.Columns))
		nums := make([]decimal.NullDecimal, len(schema.Columns))
		dest := make([]any, len(schema.Columns))
		for i, c := range schema.Columns {
			if c.Numeric {
				dest[i] = &nums[i]
			} else {
				dest[i] = &texts[i]
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.Name, err)
		}
		row := make(repository.Row, len(schema.Columns))
		for i, c := range schema.Columns {
			if c.Numeric {
				if nums[i].Valid {
					row[c.Name] = nums[i].Decimal.String()
				} else {
					row[c.Name] = ""
				}
				continue
			}
			row[c.Name] = texts[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(schema.Name, fmt.Errorf("leer %s: %w", schema.Name, err))
	}
	return out, nil
}

func insertBatch(schema repository.TableSchema, rows []repository.Row) (*pgx.Batch, error) {
	sql := insertSQL(schema)
	b := &pgx.Batch{}
	for i, row := range rows {
		args, err := rowArgs(schema, row)
		if err != nil {
			return nil, fmt.Errorf("fila %d de %s: %w", i+1, schema.Name, err)
		}
		b.Queue(sql, args...)
	}
	return b, nil
}

func sendBatch(ctx context.Context, q Querier, table string, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	br := q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return mapErr(table, fmt.Errorf("insertar en %s: %w", table, err))
		}
	}
	return br.Close()
}

// rowArgs ordena los valores según el esquema. Las columnas numéricas vacías van como NULL.
func rowArgs(schema repository.TableSchema, row repository.Row) ([]any, error) {
	args := make([]any, len(schema.Columns))
	for i, c := range schema.Columns {
		v := row[c.Name]
		if !c.Numeric {
			args[i] = v
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			args[i] = nil
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: columna %s no numérica (%q)", domain.ErrInvalidInput, c.Name, v)
		}
		args[i] = d
	}
	return args, nil
}

func selectAllSQL(schema repository.TableSchema) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY row_id",
		strings.Join(quotedColumns(schema), ", "), pgx.Identifier{schema.Name}.Sanitize())
}

func insertSQL(schema repository.TableSchema) string {
	placeholders := make([]string, len(schema.Columns))
	for i := range schema.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{schema.Name}.Sanitize(),
		strings.Join(quotedColumns(schema), ", "),
		strings.Join(placeholders, ", "))
}

func deleteAllSQL(schema repository.TableSchema) string {
	return "DELETE FROM " + pgx.Identifier{schema.Name}.Sanitize()
}

func quotedColumns(schema repository.TableSchema) []string {
	cols := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		cols[i] = pgx.Identifier{c.Name}.Sanitize()
	}
	return cols
}
