// Copyright 2020, 2023 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

var _ = (Writer)((*XLSXWriter)(nil))

// XLSXWriter writes an Excel workbook, one worksheet per sheet.
type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	styles map[string]int
	sheets []string
	mu     sync.Mutex
}

// XLSXSheet is a worksheet of an XLSXWriter.
type XLSXSheet struct {
	w    *XLSXWriter
	xl   *excelize.File
	Name string
	row  int
	mu   sync.Mutex
}

// NewXLSXWriter returns a new Writer producing an .xlsx workbook.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewXLSXWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{w: w, xl: excelize.NewFile()}
}

func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	defer xl.Close()
	_, err := xl.WriteTo(w)
	return err
}

func (xlw *XLSXWriter) NewSheet(name string, columns []Column) (Sheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	var hasHeader bool
	for i, c := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if c.Width > 0 {
			if err = xlw.xl.SetColWidth(name, col, col, c.Width); err != nil {
				return nil, err
			}
		}
		s, err := xlw.getStyle(c.Column)
		if err != nil {
			return nil, err
		}
		if s != 0 {
			if err = xlw.xl.SetColStyle(name, col, s); err != nil {
				return nil, err
			}
		}
		if s, err = xlw.getStyle(c.Header); err != nil {
			return nil, err
		}
		if s != 0 {
			if err = xlw.xl.SetCellStyle(name, col+"1", col+"1", s); err != nil {
				return nil, err
			}
		}
		if c.Name != "" {
			hasHeader = true
			if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
				return nil, err
			}
		}
	}
	xls := &XLSXSheet{w: xlw, xl: xlw.xl, Name: name}
	if hasHeader {
		xls.row++
	}
	return xls, nil
}

func (xlw *XLSXWriter) getStyle(style Style) (int, error) {
	if !style.FontBold && style.Format == "" {
		return 0, nil
	}
	k := fmt.Sprintf("%t\t%s", style.FontBold, style.Format)
	if s, ok := xlw.styles[k]; ok {
		return s, nil
	}
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	s, err := xlw.xl.NewStyle(&st)
	if err != nil {
		return 0, err
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[k] = s
	return s, nil
}

func (xlw *XLSXWriter) style(style Style) (int, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return 0, fmt.Errorf("writer is closed")
	}
	return xlw.getStyle(style)
}

// AmountStyle is the cell style of Amount values.
var AmountStyle = Style{Format: `#,##0.00" ` + models.AmountUnit + `"`}

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

func (xls *XLSXSheet) Close() error { return nil }
func (xls *XLSXSheet) AppendRow(values ...any) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.row >= MaxRowCount {
		return ErrTooManyRows
	}
	xls.row++
	for i, v := range values {
		if v == nil {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(i+1, xls.row)
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, xls.row, err)
		}
		switch x := v.(type) {
		case string:
			err = xls.xl.SetCellStr(xls.Name, axis, x)
		case Amount:
			err = xls.setAmount(axis, x)
		case fmt.Stringer:
			err = xls.xl.SetCellStr(xls.Name, axis, x.String())
		default:
			err = xls.xl.SetCellValue(xls.Name, axis, v)
		}
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
	}
	return nil
}

func (xls *XLSXSheet) setAmount(axis string, a Amount) error {
	if err := xls.xl.SetCellFloat(xls.Name, axis, a.InexactFloat64(), -1, 64); err != nil {
		return err
	}
	s, err := xls.w.style(AmountStyle)
	if err != nil {
		return err
	}
	return xls.xl.SetCellStyle(xls.Name, axis, axis, s)
}
