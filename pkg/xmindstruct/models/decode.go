package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotSheetList is returned when a content.json document is not a JSON array.
var ErrNotSheetList = errors.New("content is not a list of sheets")

// DecodeSheets decodes a whole content.json document in a single pass.
//
// The topic tree is read with an explicit stack, so decoding time is linear
// in the document size and nesting depth is not limited. Malformed members
// degrade to defaults; only invalid JSON or a top level that is not an array
// is an error.
func DecodeSheets(data []byte) ([]Sheet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('[') {
		return nil, ErrNotSheetList
	}

	sheets := []Sheet{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok == json.Delim(']') {
			break
		}
		if tok == json.Delim('{') {
			var s Sheet
			if err := readSheet(dec, &s); err != nil {
				return nil, err
			}
			sheets = append(sheets, s)
			continue
		}
		if err := skipValue(dec, tok); err != nil {
			return nil, err
		}
		sheets = append(sheets, Sheet{Title: UntitledPlaceholder})
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after sheets", tok)
	}
	return sheets, nil
}

type frameKind int

const (
	frameTopic  frameKind = iota // members of a topic object
	frameList                    // elements of a topic array
	frameGroups                  // keys of a keyed children object
	frameHolder                  // members of a {"topics": [...]} wrapper
)

// frame is one open container of the topic tree.
// Pointers stay valid because a slice is only appended to while none of
// its elements has an open frame.
type frame struct {
	kind  frameKind
	topic *Topic
	list  *[]Topic
	set   *ChildSet
	key   string
}

// readSheet reads the members of a sheet object whose '{' was consumed.
func readSheet(dec *json.Decoder, s *Sheet) error {
	*s = Sheet{Title: UntitledPlaceholder}
	for {
		key, val, done, err := member(dec)
		if err != nil || done {
			return err
		}
		switch key {
		case "id":
			s.ID, _ = val.(string)
		case "title":
			if title, ok := val.(string); ok && title != "" {
				s.Title = title
			}
		case "rootTopic":
			s.RootTopic = Topic{}
			if val == json.Delim('{') {
				if err := readTree(dec, frame{kind: frameTopic, topic: &s.RootTopic}); err != nil {
					return err
				}
				continue
			}
		}
		if err := skipValue(dec, val); err != nil {
			return err
		}
	}
}

// readTree reads the container opened by root and everything below it.
func readTree(dec *json.Decoder, root frame) error {
	stack := []frame{root}
	for len(stack) > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if tok == json.Delim('}') || tok == json.Delim(']') {
			stack = stack[:len(stack)-1]
			continue
		}

		top := stack[len(stack)-1]
		if top.kind == frameList {
			if tok == json.Delim('{') {
				*top.list = append(*top.list, Topic{})
				stack = append(stack, frame{kind: frameTopic, topic: &(*top.list)[len(*top.list)-1]})
				continue
			}
			if err := skipValue(dec, tok); err != nil {
				return err
			}
			continue
		}

		key, _ := tok.(string)
		val, err := dec.Token()
		if err != nil {
			return err
		}
		if top.kind == frameTopic {
			next, err := readTopicMember(dec, top.topic, key, val)
			if err != nil {
				return err
			}
			if next != nil {
				stack = append(stack, *next)
			}
			continue
		}

		var next *frame
		if top.kind == frameGroups {
			next = openGroup(top.set, key, val)
		} else if key == "topics" && val == json.Delim('[') {
			next = appendGroup(top.set, top.key)
		}
		if next != nil {
			stack = append(stack, *next)
			continue
		}
		if err := skipValue(dec, val); err != nil {
			return err
		}
	}
	return nil
}

// readTopicMember stores one member of t and returns the frame to push
// when val opened a children container. Any other value is consumed.
func readTopicMember(dec *json.Decoder, t *Topic, key string, val json.Token) (*frame, error) {
	switch key {
	case "id":
		t.ID, _ = val.(string)
	case "title":
		t.Title, t.HasTitle = val.(string)
	case "style":
		t.Style = nil
		if val == json.Delim('{') {
			style, err := readStyle(dec)
			t.Style = style
			return nil, err
		}
	case "children":
		t.Children = ChildSet{}
		if next := openChildren(&t.Children, val); next != nil {
			return next, nil
		}
	}
	return nil, skipValue(dec, val)
}

// openChildren sets the kind of c from the token opening its value.
func openChildren(c *ChildSet, tok json.Token) *frame {
	switch tok {
	case json.Delim('['):
		c.Kind, c.List = ChildrenList, []Topic{}
		return &frame{kind: frameList, list: &c.List}
	case json.Delim('{'):
		c.Kind = ChildrenKeyed
		return &frame{kind: frameGroups, set: c}
	}
	return nil
}

// openGroup handles one key of a keyed children object.
func openGroup(c *ChildSet, key string, val json.Token) *frame {
	switch val {
	case json.Delim('['):
		return appendGroup(c, key)
	case json.Delim('{'):
		return &frame{kind: frameHolder, set: c, key: key}
	}
	return nil
}

func appendGroup(c *ChildSet, key string) *frame {
	c.Groups = append(c.Groups, ChildGroup{Key: key, Topics: []Topic{}})
	return &frame{kind: frameList, list: &c.Groups[len(c.Groups)-1].Topics}
}

// readStyle reads a style object whose '{' was consumed.
// Only string property values are kept.
func readStyle(dec *json.Decoder) (*StyleRef, error) {
	style := &StyleRef{}
	for {
		key, val, done, err := member(dec)
		if err != nil || done {
			return style, err
		}
		if key != "properties" || val != json.Delim('{') {
			if err := skipValue(dec, val); err != nil {
				return style, err
			}
			continue
		}
		for {
			name, v, done, err := member(dec)
			if err != nil {
				return style, err
			}
			if done {
				break
			}
			if s, ok := v.(string); ok {
				if style.Properties == nil {
					style.Properties = make(map[string]string)
				}
				style.Properties[name] = s
				continue
			}
			if err := skipValue(dec, v); err != nil {
				return style, err
			}
		}
	}
}

// member reads the next key and the first token of its value.
// done is true when the object ended instead.
func member(dec *json.Decoder) (key string, val json.Token, done bool, err error) {
	tok, err := dec.Token()
	if err != nil {
		return "", nil, false, err
	}
	if tok == json.Delim('}') {
		return "", nil, true, nil
	}
	key, _ = tok.(string)
	val, err = dec.Token()
	return key, val, false, err
}

// skipValue consumes the rest of a value whose first token is tok.
func skipValue(dec *json.Decoder, tok json.Token) error {
	if tok != json.Delim('{') && tok != json.Delim('[') {
		return nil
	}
	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
	}
	return nil
}
