package xmindstruct

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidArchive indicates the input is not a readable zip container.
var ErrInvalidArchive = errors.New("invalid xmind archive")

// ErrUnsupportedFormat indicates the archive has neither content.json nor content.xml.
var ErrUnsupportedFormat = errors.New("unsupported .xmind format (missing content.json/xml)")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "content.json", "content.xml"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
