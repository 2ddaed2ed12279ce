package domain

import (
	"encoding/json"
	"strings"
)

// DefaultAuthor is used when a candidate is submitted without an author.
const DefaultAuthor = "Anonymous"

// Position is a pair of page coordinates captured at click time.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Annotation is the canonical record returned by storage.
//
// ID and Timestamp are assigned by storage. Any other field storage adds is kept
// in Extra and written back unchanged when the record is encoded again.
type Annotation struct {
	ID        string   `json:"id,omitempty"`
	URL       string   `json:"url"`
	Selector  string   `json:"selector"`
	Comment   string   `json:"comment"`
	Author    string   `json:"author"`
	Position  Position `json:"position"`
	Timestamp int64    `json:"timestamp,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var annotationFields = []string{"id", "url", "selector", "comment", "author", "position", "timestamp"}

// Preview returns the "author: comment" label shown on markers and in lists.
func (a Annotation) Preview() string {
	return a.Author + ": " + a.Comment
}

// UnmarshalJSON decodes the known fields and keeps every other field in Extra.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	type plain Annotation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range annotationFields {
		delete(raw, key)
	}
	p.Extra = nil
	if len(raw) > 0 {
		p.Extra = raw
	}

	*a = Annotation(p)
	return nil
}

// MarshalJSON encodes the known fields merged with Extra. Known fields win on conflict.
func (a Annotation) MarshalJSON() ([]byte, error) {
	type plain Annotation
	data, err := json.Marshal(plain(a))
	if err != nil || len(a.Extra) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage, len(annotationFields)+len(a.Extra))
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range a.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Candidate is an annotation built locally and not yet confirmed by storage.
type Candidate struct {
	URL      string   `json:"url"`
	Selector string   `json:"selector"`
	Comment  string   `json:"comment"`
	Author   string   `json:"author"`
	Position Position `json:"position"`
}

// NewCandidate trims the user input, applies the default author and validates the comment.
func NewCandidate(url, selector, author, comment string, pos Position) (Candidate, error) {
	c := Candidate{
		URL:      url,
		Selector: selector,
		Comment:  strings.TrimSpace(comment),
		Author:   strings.TrimSpace(author),
		Position: pos,
	}
	if c.Author == "" {
		c.Author = DefaultAuthor
	}
	if err := c.Validate(); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

// Validate reports ErrEmptyComment when the comment is blank.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Comment) == "" {
		return ErrEmptyComment
	}
	return nil
}

// Annotation converts the candidate into an unsaved annotation.
func (c Candidate) Annotation() Annotation {
	return Annotation{
		URL:      c.URL,
		Selector: c.Selector,
		Comment:  c.Comment,
		Author:   c.Author,
		Position: c.Position,
	}
}
