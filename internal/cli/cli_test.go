package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// run ejecuta evodiactl sobre un libro temporal y devuelve la salida.
func run(t *testing.T, workbook string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--backend", "xlsx", "--workbook", workbook}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

// ── Estructura ─────────────────────────────────────────────────────────────

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"init", "import", "export", "next-id"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
	enc := func() string {
		sub, _, _ := cmd.Find([]string{"import"})
		return sub.Flags().Lookup("encoding").DefValue
	}
	assert.Equal(t, EncodingUTF8, enc())
}

// ── Comandos ───────────────────────────────────────────────────────────────

func TestInit_CreaTablas(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	out, err := run(t, wb, "init")
	require.NoError(t, err)
	for _, s := range repository.Schemas() {
		assert.Contains(t, out, s.Name)
	}
	f, err := excelize.OpenFile(wb)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), len(repository.Schemas()))
}

func TestImport_Windows1252YNextID(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	csvText := "receipt_id,date,client_name,product_name,product_quantity,total_purchase\n" +
		"EVO-S-0009,2025-12-01 09:00:00,José Müller,Vela,2,100000\n" +
		",,,,,\n" +
		"EVO-S-0010,2025-12-02 09:00:00,Ana,Vela,1,50000\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(csvText)
	require.NoError(t, err)
	path := writeFile(t, "ventas.csv", []byte(encoded))

	out, err := run(t, wb, "import", "sales_orders", path, "--encoding", "windows-1252")
	require.NoError(t, err)
	assert.Contains(t, out, "2 filas importadas")
	assert.Contains(t, out, "payment_method")

	f, err := excelize.OpenFile(wb)
	require.NoError(t, err)
	rows, err := f.GetRows(repository.TableSalesOrders)
	require.NoError(t, err)
	_ = f.Close()
	require.Len(t, rows, 3)
	assert.Equal(t, "José Müller", rows[1][2])

	out, err = run(t, wb, "next-id", "sales_orders")
	require.NoError(t, err)
	assert.Equal(t, "EVO-S-0011", strings.TrimSpace(out))
}

func TestImport_ColumnaDesconocida(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	path := writeFile(t, "stock.csv", []byte("material_id,color\nMAT-1,rojo\n"))
	_, err := run(t, wb, "import", "inventory_stock", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")
}

func TestImport_NumeroIlegible(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	path := writeFile(t, "stock.csv", []byte("material_id,material_name,current_stock\nMAT-1,Cera,mucho\n"))
	_, err := run(t, wb, "import", "inventory_stock", path, "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestImport_RecetaMalformadaSeAvisa(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	path := writeFile(t, "bom.csv", []byte("\ufeffproduct_name,components\nVela,not-json\n"))
	out, err := run(t, wb, "import", "products_bom", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "⚠ receta \"Vela\"")
	assert.Contains(t, out, "dry-run")
	_, statErr := os.Stat(wb)
	assert.True(t, os.IsNotExist(statErr), "dry-run no crea el libro")
}

func TestExport_Tabla(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	path := writeFile(t, "stock.csv", []byte("material_id,material_name,supplier_name,current_stock\nMAT-0001,Cera,Toko,10\n"))
	_, err := run(t, wb, "import", "inventory_stock", path)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "stock.xlsx")
	out, err := run(t, wb, "export", "inventory_stock", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "1 filas")

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(repository.TableInventoryStock, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Cera", v)
}

func TestNextID_TablaSinIDs(t *testing.T) {
	wb := filepath.Join(t.TempDir(), "evodia.xlsx")
	_, err := run(t, wb, "init")
	require.NoError(t, err)
	_, err = run(t, wb, "next-id", "products_bom")
	assert.Error(t, err)
}

func TestDecodingReader_Desconocida(t *testing.T) {
	_, err := decodingReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}
