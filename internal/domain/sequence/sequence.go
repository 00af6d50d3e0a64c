// Package sequence deriva identificadores secuenciales legibles ("EVO-S-0007") a partir
// de los IDs ya existentes en una tabla. No detecta colisiones: dos llamadas concurrentes
// que lean el mismo máximo devuelven el mismo ID.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Next devuelve prefix + "-" + (máximo sufijo numérico + 1), sin relleno.
// Los IDs con otro prefijo o con sufijo no numérico se ignoran.
func Next(existing []string, prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, Max(existing, prefix)+1)
}

// Max devuelve el mayor sufijo numérico entre los IDs de prefix (0 si no hay ninguno).
func Max(existing []string, prefix string) int {
	head := prefix + "-"
	max := 0
	for _, id := range existing {
		id = strings.TrimSpace(id)
		if !strings.HasPrefix(id, head) {
			continue
		}
		n, ok := parseSuffix(id[len(head):])
		if ok && n > max {
			max = n
		}
	}
	return max
}

// parseSuffix acepta solo dígitos ASCII; "12a", "-3" o "" no cuentan.
func parseSuffix(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Allocator asigna IDs con relleno de ceros. Width 0 equivale a Next.
// Recuerda el último valor entregado para que un lote no repita IDs
// antes de que las filas lleguen al almacén.
type Allocator struct {
	Prefix string
	Width  int

	last int
}

// NewAllocator crea un asignador partiendo de los IDs existentes.
func NewAllocator(prefix string, width int, existing []string) *Allocator {
	return &Allocator{Prefix: prefix, Width: width, last: Max(existing, prefix)}
}

// Next entrega el siguiente ID.
func (a *Allocator) Next() string {
	a.last++
	return a.format(a.last)
}

// Peek devuelve el siguiente ID sin consumirlo.
func (a *Allocator) Peek() string {
	return a.format(a.last + 1)
}

func (a *Allocator) format(n int) string {
	if a.Width <= 0 {
		return fmt.Sprintf("%s-%d", a.Prefix, n)
	}
	return fmt.Sprintf("%s-%0*d", a.Prefix, a.Width, n)
}
