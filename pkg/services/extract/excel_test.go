package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testCellMap() CellMap {
	return CellMap{
		SheetName:   "Summary",
		Buyer:       "B2",
		Supplier:    "B3",
		Consignment: "B4",
		Date:        "B5",
		Style:       "B6",
		Color:       "B7",
		FabricCode:  "B8",
		Result:      "B9",
		Comment:     "B10",
		Rolls:       "B11",
		Metrics: map[string]string{
			"avg_point":   "C2",
			"order_width": "C3",
		},
	}
}

func writeTestWorkbook(t *testing.T, values map[string]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet("Summary")
	require.NoError(t, err)
	for addr, v := range values {
		require.NoError(t, f.SetCellValue("Summary", addr, v))
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReader_Read(t *testing.T) {
	ctx := context.Background()
	reader := NewReader(testCellMap())

	path := writeTestWorkbook(t, map[string]interface{}{
		"B2":  "Acme",
		"B3":  " Sup1 ",
		"B4":  "CON-42",
		"B5":  "2026-03-07",
		"B6":  "ST-100",
		"B7":  "Navy",
		"B8":  "FC9",
		"B9":  "PASS",
		"B10": "minor shading",
		"B11": 12,
		"C2":  9.5,
		"C3":  60,
	})

	record, err := reader.Read(ctx, path)

	require.NoError(t, err)
	assert.Equal(t, "Acme", record.Buyer)
	assert.Equal(t, "Sup1", record.Supplier, "whitespace is trimmed")
	assert.Equal(t, "CON-42", record.Consignment)
	assert.Equal(t, "ST-100", record.Style)
	assert.Equal(t, "Navy", record.Color)
	assert.Equal(t, "FC9", record.FabricCode)
	assert.Equal(t, "PASS", record.Result)
	assert.Equal(t, "minor shading", record.Comment)
	assert.Equal(t, 12, record.Rolls)
	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), record.InspectionDate)
	assert.Equal(t, 9.5, record.Metrics["avg_point"])
	assert.Equal(t, float64(60), record.Metrics["order_width"])
	assert.Equal(t, path, record.SourcePath)
	assert.Equal(t, ".xlsx", record.FileExt)
}

func TestReader_Read_BlankNumericCells(t *testing.T) {
	ctx := context.Background()
	reader := NewReader(testCellMap())

	path := writeTestWorkbook(t, map[string]interface{}{
		"B2": "Acme",
		"B9": "PASS",
	})

	record, err := reader.Read(ctx, path)

	require.NoError(t, err)
	assert.Equal(t, 0, record.Rolls)
	assert.Equal(t, float64(0), record.Metrics["avg_point"])
	assert.True(t, record.InspectionDate.IsZero())
}

func TestReader_Read_MissingSheet(t *testing.T) {
	ctx := context.Background()
	reader := NewReader(CellMap{SheetName: "Nope", Buyer: "A1"})

	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := reader.Read(ctx, path)

	assert.ErrorContains(t, err, "no sheet")
}

func TestListReportFiles(t *testing.T) {
	tmp := t.TempDir()
	mk := func(rel string) {
		path := filepath.Join(tmp, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	mk("b.xlsx")
	mk("sub/a.xlsm")
	mk("notes.txt")
	mk("~$b.xlsx")

	files, err := ListReportFiles(tmp)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmp, "b.xlsx"),
		filepath.Join(tmp, "sub", "a.xlsm"),
	}, files)
}

func TestListReportFiles_MissingDir(t *testing.T) {
	files, err := ListReportFiles(filepath.Join(t.TempDir(), "does-not-exist"))

	require.NoError(t, err)
	assert.Empty(t, files)
}
