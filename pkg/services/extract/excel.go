// Package extract reads fabric inspection report workbooks and turns them
// into typed report records using a configurable cell map.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// CellMap locates each record field inside a report workbook. Metrics maps
// rule field names to the summary-sheet cells holding their values.
type CellMap struct {
	SheetName   string            `mapstructure:"sheet_name"`
	Buyer       string            `mapstructure:"buyer"`
	Supplier    string            `mapstructure:"supplier"`
	Consignment string            `mapstructure:"consignment"`
	Date        string            `mapstructure:"date"`
	Style       string            `mapstructure:"style"`
	Color       string            `mapstructure:"color"`
	FabricCode  string            `mapstructure:"fabric_code"`
	Result      string            `mapstructure:"result"`
	Comment     string            `mapstructure:"comment"`
	Rolls       string            `mapstructure:"rolls"`
	Metrics     map[string]string `mapstructure:"metrics"`
}

// Reader extracts report records from workbooks.
type Reader struct {
	cells CellMap
}

func NewReader(cells CellMap) *Reader {
	return &Reader{cells: cells}
}

// Read opens the workbook at path and extracts one record from the summary
// sheet. Numeric cells that fail to parse are treated as zero, matching how
// inspectors leave cells blank; a missing sheet is an error.
func (r *Reader) Read(ctx context.Context, path string) (domain.ReportRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.ReportRecord{}, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Str("file", filepath.Base(path)).Msg("failed to close workbook")
		}
	}()

	sheet := r.cells.SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return domain.ReportRecord{}, fmt.Errorf("workbook %s has no sheet %q", filepath.Base(path), sheet)
	}

	cell := func(addr string) string {
		if addr == "" {
			return ""
		}
		v, err := f.GetCellValue(sheet, addr)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(v)
	}

	record := domain.ReportRecord{
		SourcePath:  path,
		FileExt:     strings.ToLower(filepath.Ext(path)),
		Buyer:       cell(r.cells.Buyer),
		Supplier:    cell(r.cells.Supplier),
		Consignment: cell(r.cells.Consignment),
		Style:       cell(r.cells.Style),
		Color:       cell(r.cells.Color),
		FabricCode:  cell(r.cells.FabricCode),
		Result:      cell(r.cells.Result),
		Comment:     cell(r.cells.Comment),
		Rolls:       int(safeFloat(cell(r.cells.Rolls))),
		Metrics:     make(map[string]float64, len(r.cells.Metrics)),
	}

	if raw := cell(r.cells.Date); raw != "" {
		record.InspectionDate = parseDate(raw)
	}

	for field, addr := range r.cells.Metrics {
		record.Metrics[field] = safeFloat(cell(addr))
	}

	return record, nil
}

// safeFloat converts a cell value to a float, treating blanks and
// unparseable text as zero.
func safeFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"01-02-06",
	"1/2/06 15:04",
	"Jan 2, 2006",
	time.RFC3339,
}

// parseDate tries the date formats seen in report templates. An
// unrecognized value yields the zero time; the archive layer formats
// whatever it gets.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
