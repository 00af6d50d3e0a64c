package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// Codificaciones aceptadas por import.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
)

// decodingReader envuelve r para convertir la codificación a UTF-8.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case EncodingLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación %q no soportada (utf-8 | windows-1252 | iso-8859-1)", encoding)
}

// readTableCSV lee un CSV cuya primera fila son nombres de columna del esquema.
// Columnas desconocidas son error; las ausentes quedan vacías.
func readTableCSV(r io.Reader, schema repository.TableSchema) ([]repository.Row, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("CSV vacío")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if !schema.Has(h) {
			return nil, nil, fmt.Errorf("columna %q no pertenece a %s", h, schema.Name)
		}
		header[i] = h
	}
	var missing []string
	for _, c := range schema.Columns {
		if !contains(header, c.Name) {
			missing = append(missing, c.Name)
		}
	}

	var rows []repository.Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row := make(repository.Row, len(schema.Columns))
		blank := true
		for i, col := range header {
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			if v != "" {
				blank = false
			}
			row[col] = v
		}
		if blank {
			continue
		}
		for _, c := range schema.Columns {
			if v := row[c.Name]; c.Numeric && v != "" {
				if _, err := decimal.NewFromString(v); err != nil {
					return nil, nil, fmt.Errorf("línea %d: %s no es numérico (%q)", line, c.Name, v)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, missing, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
