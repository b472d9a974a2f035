package parser

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

func TestIterChildTopics(t *testing.T) {
	tests := []struct {
		name     string
		children string
		expected []string
	}{
		{"absent", ``, nil},
		{"null", `null`, nil},
		{"empty object", `{}`, nil},
		{"non-topic value", `{"foo": 5}`, nil},
		{"number", `5`, nil},
		{"string", `"x"`, nil},
		{"array", `[{"title": "a"}, {"title": "b"}]`, []string{"a", "b"}},
		{"array with junk", `[5, {"title": "a"}, null, "x"]`, []string{"a"}},
		{"keyed arrays", `{"attached": [{"title": "a"}, {"title": "b"}], "detached": [{"title": "c"}]}`, []string{"a", "b", "c"}},
		{"keyed topics", `{"attached": {"topics": [{"title": "a"}]}, "summary": [{"title": "b"}]}`, []string{"a", "b"}},
		{"key order kept", `{"z": [{"title": "z1"}], "a": [{"title": "a1"}, {"title": "a2"}]}`, []string{"z1", "a1", "a2"}},
		{"topics not array", `{"attached": {"topics": 3}, "b": [{"title": "b"}]}`, []string{"b"}},
	}

	for _, tt := range tests {
		doc := `{"title": "root"}`
		if tt.children != "" {
			doc = `{"title": "root", "children": ` + tt.children + `}`
		}
		var root models.Topic
		if err := json.Unmarshal([]byte(doc), &root); err != nil {
			t.Fatalf("%s: unmarshal: %v", tt.name, err)
		}

		var titles []string
		for _, c := range IterChildTopics(&root.Children) {
			titles = append(titles, c.Title)
		}
		if diff := cmp.Diff(tt.expected, titles); diff != "" {
			t.Errorf("%s: IterChildTopics mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestIterChildTopicsNil(t *testing.T) {
	if got := IterChildTopics(nil); len(got) != 0 {
		t.Errorf("IterChildTopics(nil) = %v, expected empty", got)
	}
}
