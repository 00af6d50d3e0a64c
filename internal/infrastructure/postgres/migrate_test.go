package postgres

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/evodia-api/pkg/logger"
)

func TestGooseLogger_FatalfRegistraErrorSinSalir(t *testing.T) {
	var buf bytes.Buffer
	l := gooseLogger{log: logger.NewWithWriter(&buf, logger.Config{Env: "production", Level: "debug"})}

	l.Fatalf("falló la migración %d\n", 1)
	l.Printf("OK   %s", "00001_record_tables.sql")

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "falló la migración 1")
	assert.Contains(t, out, `"level":"info"`)
	assert.NotContains(t, out, `"level":"fatal"`)
}
