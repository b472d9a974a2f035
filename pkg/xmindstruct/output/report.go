package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// Sheet names and messages of tabular reports.
const (
	SummarySheet = "Resumen"
	GroupsSheet  = "Agentes"
	NotesSheet   = "Notas"

	NoGroupsMessage = "No se encontraron nodos con fondo verde."
	totalLabel      = "Total de miembros"
	amountLabel     = "Total invertido"
)

var bold = Style{FontBold: true}

// SummaryColumns are the columns of the per-sheet summary.
var SummaryColumns = []Column{
	{Name: "Hoja", Header: bold, Width: 30},
	{Name: "Miembros", Header: bold, Width: 12},
}

// GroupColumns are the columns of the group table.
var GroupColumns = []Column{
	{Name: "Fecha de ingreso", Header: bold, Width: 16},
	{Name: "Agente", Header: bold, Width: 24},
	{Name: "Monto invertido", Header: bold, Width: 18},
	{Name: "Nivel", Header: bold, Width: 12},
	{Name: "Total miembros", Header: bold, Width: 14},
}

// WriteReport writes the summary, group and notes sheets of report to w.
// It does not close w.
func WriteReport(w Writer, report *models.Report) error {
	if err := writeSummary(w, report); err != nil {
		return fmt.Errorf("%s: %w", SummarySheet, err)
	}
	if report.Format == models.FormatJSON {
		if err := writeGroups(w, report); err != nil {
			return fmt.Errorf("%s: %w", GroupsSheet, err)
		}
	}
	if len(report.Notes) != 0 {
		if err := writeNotes(w, report.Notes); err != nil {
			return fmt.Errorf("%s: %w", NotesSheet, err)
		}
	}
	return nil
}

func writeSummary(w Writer, report *models.Report) error {
	sheet, err := w.NewSheet(SummarySheet, SummaryColumns)
	if err != nil {
		return err
	}
	for _, c := range report.SheetCounts {
		if err := sheet.AppendRow(c.Sheet, c.ChildCount); err != nil {
			return err
		}
	}
	if err := sheet.AppendRow(totalLabel, report.Total); err != nil {
		return err
	}
	return sheet.Close()
}

func writeGroups(w Writer, report *models.Report) error {
	verbose := report.Verbose()
	cols := GroupColumns
	if verbose {
		cols = append(append([]Column(nil), GroupColumns...), Column{Name: "Hoja", Header: bold, Width: 20})
	}
	sheet, err := w.NewSheet(GroupsSheet, cols)
	if err != nil {
		return err
	}
	if len(report.GroupRows) == 0 {
		if err := sheet.AppendRow(NoGroupsMessage); err != nil {
			return err
		}
		return sheet.Close()
	}

	sum, amounts := decimal.Zero, 0
	for _, r := range report.GroupRows {
		values := []any{r.Ingreso, r.Agente, r.Monto, r.Nivel, r.Total}
		if verbose {
			values = append(values, r.Sheet)
		}
		if err := sheet.AppendRow(values...); err != nil {
			return err
		}
		if d, ok := r.AmountValue(); ok {
			sum = sum.Add(d)
			amounts++
		}
	}
	if amounts != 0 {
		if err := sheet.AppendRow(amountLabel, nil, Amount{sum}, nil, nil); err != nil {
			return err
		}
	}
	return sheet.Close()
}

func writeNotes(w Writer, notes []string) error {
	sheet, err := w.NewSheet(NotesSheet, []Column{{Name: "Nota", Header: bold, Width: 100}})
	if err != nil {
		return err
	}
	for _, n := range notes {
		if err := sheet.AppendRow(n); err != nil {
			return err
		}
	}
	return sheet.Close()
}

// Amount is a sum of invested amounts. Text writers print it with the
// currency unit, the XLSX writer stores the number.
type Amount struct {
	decimal.Decimal
}

func (a Amount) String() string { return FormatAmount(a.Decimal) }

// FormatAmount renders an amount with the report's currency unit.
func FormatAmount(d decimal.Decimal) string {
	return d.String() + " " + models.AmountUnit
}
