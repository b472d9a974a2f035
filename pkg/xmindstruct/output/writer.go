// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package output serializes extraction reports.
package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// Writer writes a tabular document consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// Style is a style for a column or header cell.
type Style struct {
	// Format is the number format
	Format string
	// FontBold is true if the font is bold
	FontBold bool
}

// Column contains the Name of the column and header's style and column's style.
type Column struct {
	Name           string
	Header, Column Style
	// Width is the column width in characters (0 keeps the default).
	Width float64
}

// ErrTooManyRows is returned when a sheet exceeds the format's row limit.
var ErrTooManyRows = errors.New("too many rows")

// Format is an output format name.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat converts a format name, returning false for unknown names.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV, FormatXLSX, FormatPDF:
		return f, true
	}
	return "", false
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, ok := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); ok {
		return f
	}
	return FormatJSON
}

// Options configures report serialization.
type Options struct {
	// Pretty indents JSON output.
	Pretty bool
	// Charset is the CSV output charset (empty or utf-8 writes UTF-8).
	Charset string
	// Landscape selects landscape PDF pages.
	Landscape bool
	// FontSize is the PDF body font size in points (0 uses the default).
	FontSize float64
}

// Write serializes report to w in the given format.
func Write(w io.Writer, report *models.Report, format Format, opts Options) error {
	if format == FormatJSON {
		data, err := ToJSON(report, opts.Pretty)
		if err != nil {
			return err
		}
		if _, err = w.Write(append(data, '\n')); err != nil {
			return err
		}
		return nil
	}

	var tw Writer
	switch format {
	case FormatCSV:
		cw, err := NewCSVWriter(w, opts.Charset)
		if err != nil {
			return err
		}
		tw = cw
	case FormatXLSX:
		tw = NewXLSXWriter(w)
	case FormatPDF:
		tw = NewPDFWriter(w, PDFOptions{Landscape: opts.Landscape, FontSize: opts.FontSize})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err := WriteReport(tw, report); err != nil {
		_ = tw.Close()
		return err
	}
	return tw.Close()
}

// cellText renders a cell value for text based formats.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
