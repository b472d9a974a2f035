package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UntitledPlaceholder replaces a missing or non-text title.
const UntitledPlaceholder = "Sin título"

// Sheet is one top-level tree of the document.
type Sheet struct {
	// ID is the XMind sheet id (may be empty).
	ID string `json:"id,omitempty"`
	// Title is the sheet title, UntitledPlaceholder when missing.
	Title string `json:"title"`
	// RootTopic is the root of the sheet's topic tree.
	RootTopic Topic `json:"rootTopic"`
}

// UnmarshalJSON decodes a sheet, defaulting the title and root topic.
func (s *Sheet) UnmarshalJSON(data []byte) error {
	*s = Sheet{Title: UntitledPlaceholder}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case nil:
		return nil
	case json.Delim('{'):
		return readSheet(dec, s)
	}
	return fmt.Errorf("sheet: unexpected %v", tok)
}

// SheetCount is the member count of one sheet.
type SheetCount struct {
	// Sheet is the sheet title.
	Sheet string `json:"sheet"`
	// ChildCount is the number of counted members below the root topic.
	ChildCount int `json:"child_count"`
}
