// Package models defines data structures for XMind extraction.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Style property keys read by the color classifier.
const (
	PropTextColor = "fo:color"
	PropFillColor = "svg:fill"
)

// StyleRef holds the style properties attached to a topic.
type StyleRef struct {
	// Properties maps a style property key to its value.
	// Only string values are kept.
	Properties map[string]string `json:"properties,omitempty"`
}

// Property returns the value stored under key.
func (s *StyleRef) Property(key string) (string, bool) {
	if s == nil || s.Properties == nil {
		return "", false
	}
	v, ok := s.Properties[key]
	return v, ok
}

// Topic is a node of the mind-map hierarchy.
type Topic struct {
	// ID is the XMind topic id (may be empty).
	ID string `json:"id,omitempty"`
	// Title is the raw topic title.
	Title string `json:"title,omitempty"`
	// HasTitle is false when the title is absent or not a string.
	HasTitle bool `json:"-"`
	// Style is the topic style (nil if absent or malformed).
	Style *StyleRef `json:"style,omitempty"`
	// Children holds the child topics in their source shape.
	Children ChildSet `json:"children"`
}

// UnmarshalJSON decodes a topic without failing on malformed members.
// Anything that is not a JSON object (or null) leaves t empty and returns
// an error.
func (t *Topic) UnmarshalJSON(data []byte) error {
	*t = Topic{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case nil:
		return nil
	case json.Delim('{'):
		return readTree(dec, frame{kind: frameTopic, topic: t})
	}
	return fmt.Errorf("topic: unexpected %v", tok)
}

// ChildKind tells which of the tolerated "children" shapes was found.
type ChildKind int

const (
	// ChildrenAbsent covers a missing, null or unrecognized children value.
	ChildrenAbsent ChildKind = iota
	// ChildrenList is a plain JSON array of topics.
	ChildrenList
	// ChildrenKeyed is a JSON object of topic arrays or {"topics": [...]} objects.
	ChildrenKeyed
)

// ChildGroup is one keyed entry of a ChildrenKeyed value, e.g. "attached".
type ChildGroup struct {
	Key    string
	Topics []Topic
}

// ChildSet is the decoded "children" value of a topic.
//
// XMind writes children as {"attached": [...], "detached": [...]}, older
// exports nest them one level deeper as {"attached": {"topics": [...]}},
// and some tools emit a bare array. All three are accepted; any other shape
// decodes to ChildrenAbsent.
type ChildSet struct {
	Kind   ChildKind
	List   []Topic
	Groups []ChildGroup
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error.
func (c *ChildSet) UnmarshalJSON(data []byte) error {
	*c = ChildSet{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if f := openChildren(c, tok); f != nil {
		_ = readTree(dec, *f)
	}
	return nil
}

// MarshalJSON writes the keyed shape back as XMind does, or a plain array.
func (c ChildSet) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ChildrenList:
		return json.Marshal(c.List)
	case ChildrenKeyed:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, g := range c.Groups {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(g.Key)
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(g.Topics)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}

// Attached returns a keyed ChildSet with a single "attached" group.
func Attached(topics ...Topic) ChildSet {
	return ChildSet{Kind: ChildrenKeyed, Groups: []ChildGroup{{Key: "attached", Topics: topics}}}
}
