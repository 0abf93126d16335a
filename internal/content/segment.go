// Package content turns raw question markup into render-ready segments.
//
// Question text arrives as entity-encoded HTML with embedded MathML. Normalize
// splits it into text segments, which carry inline markup through unchanged,
// and math segments, which carry a typesetter-ready expression together with a
// plain-text fallback.
package content

import "encoding/json"

// SegmentKind tags the variant held by a Segment.
type SegmentKind string

const (
	KindText SegmentKind = "text"
	KindMath SegmentKind = "math"
)

// Segment is one unit of normalized content. For KindText only HTML is set;
// for KindMath only Expression and FallbackText are set.
type Segment struct {
	Kind         SegmentKind
	HTML         string
	Expression   string
	FallbackText string
}

// Content is an ordered sequence of segments in source order.
type Content []Segment

// Text builds a text segment.
func Text(html string) Segment {
	return Segment{Kind: KindText, HTML: html}
}

// Math builds a math segment.
func Math(expression, fallback string) Segment {
	return Segment{Kind: KindMath, Expression: expression, FallbackText: fallback}
}

func (s Segment) IsText() bool { return s.Kind == KindText }

func (s Segment) IsMath() bool { return s.Kind == KindMath }

// MarshalJSON writes only the fields that belong to the segment's kind.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.Kind == KindMath {
		return json.Marshal(struct {
			Kind         SegmentKind `json:"kind"`
			Expression   string      `json:"expression"`
			FallbackText string      `json:"fallbackText"`
		}{s.Kind, s.Expression, s.FallbackText})
	}
	return json.Marshal(struct {
		Kind SegmentKind `json:"kind"`
		HTML string      `json:"html"`
	}{KindText, s.HTML})
}

// MathCount returns the number of math segments.
func (c Content) MathCount() int {
	n := 0
	for _, s := range c {
		if s.IsMath() {
			n++
		}
	}
	return n
}

// UnmarshalJSON accepts the form written by MarshalJSON.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var aux struct {
		Kind         SegmentKind `json:"kind"`
		HTML         string      `json:"html"`
		Expression   string      `json:"expression"`
		FallbackText string      `json:"fallbackText"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Kind == KindMath {
		*s = Math(aux.Expression, aux.FallbackText)
		return nil
	}
	*s = Text(aux.HTML)
	return nil
}
