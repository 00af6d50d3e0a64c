package sheets_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/evodia-api/internal/infrastructure/sheets"
)

func TestReportExporter_Export(t *testing.T) {
	data, err := sheets.NewReportExporter().Export("Report",
		[]string{"receipt_id", "client_name"},
		[][]string{{"EVO-S-0001", "Ana"}, {"EVO-S-0002", "Budi"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Report"}, f.GetSheetList())
	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"receipt_id", "client_name"}, rows[0])
	assert.Equal(t, []string{"EVO-S-0002", "Budi"}, rows[2])
}
