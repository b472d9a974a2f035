package output

import (
	"encoding/json"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// ToJSON serializes a report to JSON.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
