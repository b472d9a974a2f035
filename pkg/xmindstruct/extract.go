package xmindstruct

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/parser"
)

// XMLNotice is attached to reports built from content.xml.
const XMLNotice = "Este archivo usa content.xml. Los estilos son limitados, por lo que el filtrado rojo/verde puede no estar disponible."

// Extract extracts member counts and group rows from an .xmind file.
func Extract(path string, opts Options) (*models.Report, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	a, err := parser.OpenArchive(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer a.Close()

	return extract(a, filepath.Base(path), opts)
}

// ExtractReader is Extract for an archive held in memory or any io.ReaderAt.
// name is used as the report's book name.
func ExtractReader(r io.ReaderAt, size int64, name string, opts Options) (*models.Report, error) {
	a, err := parser.NewArchive(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	return extract(a, name, opts)
}

func extract(a *parser.Archive, bookName string, opts Options) (*models.Report, error) {
	log := opts.logger().With(zap.String("book", bookName))

	switch {
	case a.Has(parser.ContentJSON):
		data, err := a.ReadFile(parser.ContentJSON)
		if err != nil {
			return nil, NewExtractionError("", parser.ContentJSON, err)
		}
		sheets, err := parser.ParseContentJSON(data)
		if err != nil {
			return nil, NewExtractionError("", parser.ContentJSON, err)
		}
		log.Debug("Decoded content.json", zap.Int("sheets", len(sheets)))
		return summarizeSheets(bookName, sheets, opts, log), nil

	case a.Has(parser.ContentXML):
		data, err := a.ReadFile(parser.ContentXML)
		if err != nil {
			return nil, NewExtractionError("", parser.ContentXML, err)
		}
		counts := parser.ParseXMLCounts(data)
		log.Warn("Falling back to content.xml, styles are not available", zap.Int("sheets", len(counts)))
		total := 0
		for _, c := range counts {
			total += c.ChildCount
		}
		return &models.Report{
			BookName:    bookName,
			Format:      models.FormatXML,
			SheetCounts: counts,
			Total:       total,
			GroupRows:   []models.Row{},
			Notes:       []string{XMLNotice},
		}, nil
	}

	log.Debug("No content entry found", zap.Strings("entries", a.Names()))
	return nil, ErrUnsupportedFormat
}

// summarizeSheets counts members per sheet and builds the group rows.
func summarizeSheets(bookName string, sheets []models.Sheet, opts Options, log *zap.Logger) *models.Report {
	report := &models.Report{
		BookName:    bookName,
		Format:      models.FormatJSON,
		SheetCounts: make([]models.SheetCount, 0, len(sheets)),
		GroupRows:   []models.Row{},
		Notes:       []string{},
	}

	var groups []models.GroupRecord
	for i := range sheets {
		sheet := &sheets[i]
		count := parser.CountDescendants(&sheet.RootTopic)
		report.SheetCounts = append(report.SheetCounts, models.SheetCount{
			Sheet:      sheet.Title,
			ChildCount: count,
		})
		report.Total += count

		if opts.ShouldCollectGroups() {
			found := parser.CollectGreenGroups(&sheet.RootTopic, sheet.Title)
			log.Debug("Sheet summarized",
				zap.String("sheet", sheet.Title),
				zap.Int("members", count),
				zap.Int("groups", len(found)))
			groups = append(groups, found...)
		}
	}

	parser.SortGroups(groups)
	for _, g := range groups {
		row := parser.ParseGroupRow(g.Title, g.Count)
		if opts.ShouldIncludeSheet() {
			row.Sheet = g.Sheet
		}
		report.GroupRows = append(report.GroupRows, row)
	}
	if opts.ShouldCollectGroups() && len(groups) == 0 {
		log.Info("No green-filled groups found")
	}

	return report
}
