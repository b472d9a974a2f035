package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DefaultFontSize is the PDF body font size in points.
const DefaultFontSize = 8

// gridColumns is the width of a maroto row in grid units.
const gridColumns = 12

// AlternateColor is the background of every other body row.
var AlternateColor = props.Color{Red: 230, Green: 230, Blue: 230}

// PDFOptions configures a PDFWriter.
type PDFOptions struct {
	Landscape bool
	FontSize  float64
}

var _ = (Writer)((*PDFWriter)(nil))

// PDFWriter renders every sheet as a titled table in one A4 document.
// The document is generated and written on Close.
type PDFWriter struct {
	w        io.Writer
	m        core.Maroto
	fontSize float64
	mu       sync.Mutex
}

// NewPDFWriter returns a Writer producing a PDF document.
func NewPDFWriter(w io.Writer, opts PDFOptions) *PDFWriter {
	orient := orientation.Vertical
	if opts.Landscape {
		orient = orientation.Horizontal
	}
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		Build()
	return &PDFWriter{w: w, m: maroto.New(cfg), fontSize: fontSize}
}

func (pw *PDFWriter) NewSheet(name string, columns []Column) (Sheet, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.m == nil {
		return nil, fmt.Errorf("%s: writer is closed", name)
	}
	titleSize := pw.fontSize * 1.375
	pw.m.AddRow(titleSize*0.8, text.NewCol(gridColumns, name, props.Text{
		Style: fontstyle.Bold,
		Size:  titleSize,
		Align: align.Left,
	}))
	grid := gridSizes(len(columns))
	s := &pdfSheet{pw: pw, grid: grid}
	var header []any
	for _, c := range columns {
		header = append(header, c.Name)
	}
	if len(header) != 0 {
		pw.m.AddRows(s.row(header, props.Text{Style: fontstyle.Bold, Size: pw.fontSize, Align: align.Center}))
	}
	return s, nil
}

// Close generates the document and writes it out.
func (pw *PDFWriter) Close() error {
	if pw == nil {
		return nil
	}
	pw.mu.Lock()
	defer pw.mu.Unlock()
	m, w := pw.m, pw.w
	pw.m, pw.w = nil, nil
	if m == nil || w == nil {
		return nil
	}
	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

type pdfSheet struct {
	pw   *PDFWriter
	grid []int
	n    int
}

func (s *pdfSheet) Close() error { return nil }
func (s *pdfSheet) AppendRow(values ...any) error {
	s.pw.mu.Lock()
	defer s.pw.mu.Unlock()
	if s.pw.m == nil {
		return fmt.Errorf("writer is closed")
	}
	r := s.row(values, props.Text{Size: s.pw.fontSize, Align: align.Center})
	if s.n%2 == 1 {
		bg := AlternateColor
		r = r.WithStyle(&props.Cell{BackgroundColor: &bg})
	}
	s.n++
	s.pw.m.AddRows(r)
	return nil
}

func (s *pdfSheet) row(values []any, style props.Text) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		size := 1
		if i < len(s.grid) {
			size = s.grid[i]
		}
		cols = append(cols, text.NewCol(size, cellText(v), style))
	}
	return row.New(s.pw.fontSize * 0.7).Add(cols...)
}

// gridSizes spreads the grid over n columns, wider columns first.
func gridSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridColumns {
		n = gridColumns
	}
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = gridColumns / n
		if i < gridColumns%n {
			sizes[i]++
		}
	}
	return sizes
}
