package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// GetEncoding returns the encoding for a charset name, nil for UTF-8.
// Adapted from github.com/UNO-SOFT/spreadsheet (Apache-2.0).
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

var _ = (Writer)((*CSVWriter)(nil))

// CSVWriter writes every sheet to one CSV stream, separated by an empty line.
type CSVWriter struct {
	w      io.Writer
	enc    io.Writer
	cw     *csv.Writer
	sheets int
	mu     sync.Mutex
}

// NewCSVWriter returns a CSV Writer encoding its output with charset.
func NewCSVWriter(w io.Writer, charset string) (*CSVWriter, error) {
	enc, err := GetEncoding(charset)
	if err != nil {
		return nil, err
	}
	cw := &CSVWriter{w: w}
	if enc != nil {
		cw.enc = encoding.ReplaceUnsupported(enc.NewEncoder()).Writer(w)
		cw.w = cw.enc
	}
	cw.cw = csv.NewWriter(cw.w)
	return cw, nil
}

func (cw *CSVWriter) NewSheet(name string, columns []Column) (Sheet, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.sheets > 0 {
		cw.cw.Flush()
		if _, err := io.WriteString(cw.w, "\n"); err != nil {
			return nil, err
		}
	}
	cw.sheets++
	var header []string
	for _, c := range columns {
		if c.Name != "" {
			header = append(header, c.Name)
		}
	}
	if len(header) != 0 {
		if err := cw.cw.Write(header); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return &csvSheet{cw: cw, name: name}, nil
}

// Close flushes the CSV data and the charset encoder.
func (cw *CSVWriter) Close() error {
	if cw == nil {
		return nil
	}
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.cw.Flush()
	if err := cw.cw.Error(); err != nil {
		return err
	}
	if c, ok := cw.enc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type csvSheet struct {
	cw   *CSVWriter
	name string
	rec  []string
}

func (s *csvSheet) Close() error { return nil }
func (s *csvSheet) AppendRow(values ...any) error {
	s.cw.mu.Lock()
	defer s.cw.mu.Unlock()
	s.rec = s.rec[:0]
	for _, v := range values {
		s.rec = append(s.rec, cellText(v))
	}
	if err := s.cw.cw.Write(s.rec); err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	return nil
}
