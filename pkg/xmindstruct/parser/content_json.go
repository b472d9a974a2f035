package parser

import (
	"bytes"
	"fmt"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseContentJSON decodes content.json into its sheets.
// The document must be a JSON array; a sheet that is not an object becomes
// an untitled sheet with an empty root.
func ParseContentJSON(data []byte) ([]models.Sheet, error) {
	data = bytes.TrimPrefix(bytes.TrimSpace(data), utf8BOM)
	sheets, err := models.DecodeSheets(data)
	if err != nil {
		return nil, fmt.Errorf("decode sheets: %w", err)
	}
	return sheets, nil
}
