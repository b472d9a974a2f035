package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// ContentNamespace is the XML namespace of content.xml elements.
const ContentNamespace = "urn:xmind:xmap:xmlns:content:2.0"

// ParseXMLCounts counts the topics of every sheet in content.xml.
//
// Styles cannot be resolved from content.xml, so every topic below the root
// is counted. The sheet title is the text of the first title element in
// document order. Malformed XML ends the scan; sheets read so far are kept.
func ParseXMLCounts(data []byte) []models.SheetCount {
	results := []models.SheetCount{}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && isContentElement(se.Name, "sheet") {
			results = append(results, parseSheetElement(decoder))
		}
	}

	return results
}

// parseSheetElement consumes a sheet element and counts its topics.
func parseSheetElement(decoder *xml.Decoder) models.SheetCount {
	var title string
	var hasTitle bool
	var topics int

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch {
			case isContentElement(t.Name, "topic"):
				topics++
			case isContentElement(t.Name, "title") && !hasTitle:
				if txt, err := readElementText(decoder); err == nil {
					title = txt
					hasTitle = true
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if !hasTitle {
		title = models.UntitledPlaceholder
	}
	return models.SheetCount{Sheet: title, ChildCount: max(topics-1, 0)}
}

func isContentElement(name xml.Name, local string) bool {
	return name.Space == ContentNamespace && name.Local == local
}

// readElementText returns the text content of the current element,
// including nested elements, and consumes its end tag.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text bytes.Buffer
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// charsetReader decodes non UTF-8 documents declared in the XML prolog.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
