// Package bom codifica y decodifica la columna components de products_bom:
// una lista JSON de {"material_name", "supplier_name", "quantity_needed"}.
package bom

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
)

type wireComponent struct {
	MaterialName   json.RawMessage `json:"material_name"`
	SupplierName   json.RawMessage `json:"supplier_name"`
	QuantityNeeded json.RawMessage `json:"quantity_needed"`
}

type wireComponentOut struct {
	MaterialName   string          `json:"material_name"`
	SupplierName   string          `json:"supplier_name"`
	QuantityNeeded json.RawMessage `json:"quantity_needed"`
}

// Decode convierte el texto codificado en componentes. Cualquier campo ausente, de tipo
// incorrecto o cantidad no positiva devuelve un error que envuelve domain.ErrRecipeMalformed.
func Decode(encoded string) ([]entity.Component, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, malformed("lista de componentes vacía")
	}
	dec := json.NewDecoder(strings.NewReader(encoded))
	var wire []wireComponent
	if err := dec.Decode(&wire); err != nil {
		return nil, malformed("json inválido: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("datos sobrantes tras la lista")
	}
	if len(wire) == 0 {
		return nil, malformed("lista de componentes vacía")
	}

	out := make([]entity.Component, 0, len(wire))
	for i, w := range wire {
		material, err := decodeString(w.MaterialName)
		if err != nil {
			return nil, malformed("componente %d: material_name: %v", i, err)
		}
		if strings.TrimSpace(material) == "" {
			return nil, malformed("componente %d: material_name vacío", i)
		}
		supplier, err := decodeString(w.SupplierName)
		if err != nil {
			return nil, malformed("componente %d: supplier_name: %v", i, err)
		}
		qty, err := decodeQuantity(w.QuantityNeeded)
		if err != nil {
			return nil, malformed("componente %d: quantity_needed: %v", i, err)
		}
		if !qty.IsPositive() {
			return nil, malformed("componente %d: quantity_needed debe ser positivo", i)
		}
		out = append(out, entity.Component{
			MaterialName:   material,
			SupplierName:   supplier,
			QuantityNeeded: qty,
		})
	}
	return out, nil
}

// Encode serializa los componentes. Las cantidades se escriben como número JSON con la
// representación exacta del decimal, así Decode(Encode(c)) devuelve los mismos valores.
func Encode(components []entity.Component) (string, error) {
	if len(components) == 0 {
		return "", malformed("lista de componentes vacía")
	}
	wire := make([]wireComponentOut, len(components))
	for i, c := range components {
		if strings.TrimSpace(c.MaterialName) == "" {
			return "", malformed("componente %d: material_name vacío", i)
		}
		if !c.QuantityNeeded.IsPositive() {
			return "", malformed("componente %d: quantity_needed debe ser positivo", i)
		}
		wire[i] = wireComponentOut{
			MaterialName:   c.MaterialName,
			SupplierName:   c.SupplierName,
			QuantityNeeded: json.RawMessage(c.QuantityNeeded.String()),
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wire); err != nil {
		return "", fmt.Errorf("codificar componentes: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func decodeString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("campo ausente")
	}
	if raw[0] != '"' {
		return "", errors.New("se esperaba texto")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func decodeQuantity(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, errors.New("campo ausente")
	}
	if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return decimal.Zero, errors.New("se esperaba un número")
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrRecipeMalformed, fmt.Sprintf(format, args...))
}
