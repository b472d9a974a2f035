package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		BookName: "equipo.xmind",
		Format:   models.FormatJSON,
		SheetCounts: []models.SheetCount{
			{Sheet: "Equipo", ChildCount: 8},
			{Sheet: "Vacía", ChildCount: 0},
		},
		Total: 8,
		GroupRows: []models.Row{
			{Ingreso: "2024-02-01", Agente: "Ana", Monto: "50 USDT", Nivel: "N1", Total: 3},
			{Ingreso: "2024-01-05", Agente: "juan****@example.com", Monto: "100 USDT", Nivel: "N2", Total: 2},
		},
		Notes: []string{},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), FormatJSON, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Errorf("Expected a trailing newline, got %q", buf.String())
	}

	var back models.Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(sampleReport(), &back); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), `"child_count":8`) {
		t.Errorf("Expected child_count key, got %s", buf.String())
	}
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(sampleReport(), true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	expected := `  "sheet_counts": [
    {
      "sheet": "Equipo",
      "child_count": 8
    },`
	if !strings.Contains(string(data), expected) {
		t.Errorf("ToJSON = %s, expected it to contain %s", data, expected)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), FormatCSV, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	expected := "Hoja,Miembros\n" +
		"Equipo,8\n" +
		"Vacía,0\n" +
		"Total de miembros,8\n" +
		"\n" +
		"Fecha de ingreso,Agente,Monto invertido,Nivel,Total miembros\n" +
		"2024-02-01,Ana,50 USDT,N1,3\n" +
		"2024-01-05,juan****@example.com,100 USDT,N2,2\n" +
		"Total invertido,,150 USDT,,\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVCharset(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), FormatCSV, Options{Charset: "windows-1252"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Vac\xeda,0\n")) {
		t.Errorf("Expected windows-1252 output, got %q", buf.Bytes())
	}

	if _, err := NewCSVWriter(&buf, "no-such-charset"); err == nil {
		t.Error("Expected error for unknown charset")
	}
}

func TestWriteCSVNotesOnly(t *testing.T) {
	report := &models.Report{
		Format:      models.FormatXML,
		SheetCounts: []models.SheetCount{{Sheet: "Hoja", ChildCount: 2}},
		Total:       2,
		GroupRows:   []models.Row{},
		Notes:       []string{"aviso"},
	}
	var buf bytes.Buffer
	if err := Write(&buf, report, FormatCSV, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	expected := "Hoja,Miembros\nHoja,2\nTotal de miembros,2\n\nNota\naviso\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVNoGroups(t *testing.T) {
	report := sampleReport()
	report.GroupRows = []models.Row{}
	var buf bytes.Buffer
	if err := Write(&buf, report, FormatCSV, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), NoGroupsMessage+"\n") {
		t.Errorf("Expected no-groups message, got %q", buf.String())
	}
}

func TestWriteXLSX(t *testing.T) {
	report := sampleReport()
	report.GroupRows[0].Sheet = "Equipo"
	var buf bytes.Buffer
	if err := Write(&buf, report, FormatXLSX, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	xl, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer xl.Close()

	if diff := cmp.Diff([]string{SummarySheet, GroupsSheet}, xl.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}
	rows, err := xl.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	expected := [][]string{
		{"Hoja", "Miembros"},
		{"Equipo", "8"},
		{"Vacía", "0"},
		{"Total de miembros", "8"},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	cells := map[string]string{
		"A1": "Fecha de ingreso",
		"F1": "Hoja",
		"B2": "Ana",
		"F2": "Equipo",
		"E3": "2",
		"A4": "Total invertido",
	}
	for axis, want := range cells {
		got, err := xl.GetCellValue(GroupsSheet, axis)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", axis, err)
		}
		if got != want {
			t.Errorf("%s = %q, expected %q", axis, got, want)
		}
	}
	assertAmountCell(t, xl, GroupsSheet, "C4", "150")
}

func TestXLSXAmountCell(t *testing.T) {
	var buf bytes.Buffer
	w := NewXLSXWriter(&buf)
	sheet, err := w.NewSheet("Montos", []Column{{Name: "Monto", Header: bold}})
	if err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	if err := sheet.AppendRow(Amount{decimal.RequireFromString("12.5")}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	xl, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer xl.Close()
	assertAmountCell(t, xl, "Montos", "A2", "12.5")
}

// assertAmountCell checks that axis holds the number raw, formatted with AmountStyle.
func assertAmountCell(t *testing.T, xl *excelize.File, sheet, axis, raw string) {
	t.Helper()
	got, err := xl.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue(%s) failed: %v", axis, err)
	}
	if got != raw {
		t.Errorf("%s = %q, expected %q", axis, got, raw)
	}
	id, err := xl.GetCellStyle(sheet, axis)
	if err != nil {
		t.Fatalf("GetCellStyle(%s) failed: %v", axis, err)
	}
	style, err := xl.GetStyle(id)
	if err != nil {
		t.Fatalf("GetStyle(%d) failed: %v", id, err)
	}
	if style.CustomNumFmt == nil || *style.CustomNumFmt != AmountStyle.Format {
		t.Errorf("%s number format = %v, expected %q", axis, style.CustomNumFmt, AmountStyle.Format)
	}
}

func TestWritePDF(t *testing.T) {
	for _, landscape := range []bool{false, true} {
		var buf bytes.Buffer
		if err := Write(&buf, sampleReport(), FormatPDF, Options{Landscape: landscape}); err != nil {
			t.Fatalf("Write(landscape=%v) failed: %v", landscape, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Errorf("Expected PDF output (landscape=%v), got %q", landscape, buf.Bytes()[:min(16, buf.Len())])
		}
	}
}

func TestGridSizes(t *testing.T) {
	tests := []struct {
		n        int
		expected []int
	}{
		{0, nil},
		{1, []int{12}},
		{2, []int{6, 6}},
		{5, []int{3, 3, 2, 2, 2}},
		{6, []int{2, 2, 2, 2, 2, 2}},
		{14, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, gridSizes(tt.n)); diff != "" {
			t.Errorf("gridSizes(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"out.csv", FormatCSV},
		{"out.XLSX", FormatXLSX},
		{"dir/out.pdf", FormatPDF},
		{"out.json", FormatJSON},
		{"out.txt", FormatJSON},
		{"out", FormatJSON},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.expected {
			t.Errorf("FormatFromPath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}

	if _, ok := ParseFormat("ods"); ok {
		t.Error("Expected ods to be rejected")
	}
	if err := Write(&bytes.Buffer{}, sampleReport(), Format("ods"), Options{}); err == nil {
		t.Error("Expected error for unknown format")
	}
}
