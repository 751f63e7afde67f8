// Package summary defines the summary contract returned by the summarization API.
package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is a granularity preset: the target character budget of a summary variant.
type Level int

const (
	Level100 Level = 100
	Level200 Level = 200
	Level300 Level = 300
)

// DefaultLevel is the preset selected when a result is first shown.
const DefaultLevel = Level100

// ErrUnknownLevel is returned for a preset other than 100, 200 or 300.
var ErrUnknownLevel = errors.New("unknown summary level")

// Levels returns the presets in display order.
func Levels() []Level {
	return []Level{Level100, Level200, Level300}
}

// Valid reports whether l is one of the presets.
func (l Level) Valid() bool {
	switch l {
	case Level100, Level200, Level300:
		return true
	}
	return false
}

// Label is the button caption for the preset.
func (l Level) Label() string {
	return fmt.Sprintf("%d자 요약", int(l))
}

func (l Level) String() string {
	return strconv.Itoa(int(l))
}

// ParseLevel accepts "100", "200" or "300" (an optional "chars" prefix is ignored).
func ParseLevel(s string) (Level, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "chars")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownLevel, n)
	}
	return l, nil
}

// Summary is one summarization result: an identifier and one text per preset.
type Summary struct {
	ID       string
	Variants map[Level]string
}

// Text returns the raw variant for level, or "" when the level is unknown.
func (s *Summary) Text(level Level) string {
	if s == nil {
		return ""
	}
	return s.Variants[level]
}

// wire is the JSON body of a summarize response. Older servers used the
// line-count field names; they map onto the same presets.
type wire struct {
	ID       string  `json:"id"`
	Chars100 *string `json:"chars100,omitempty"`
	Chars200 *string `json:"chars200,omitempty"`
	Chars300 *string `json:"chars300,omitempty"`
	Lines3   *string `json:"lines3,omitempty"`
	Lines5   *string `json:"lines5,omitempty"`
	Lines8   *string `json:"lines8,omitempty"`
}

// MarshalJSON writes the chars100/chars200/chars300 shape.
func (s Summary) MarshalJSON() ([]byte, error) {
	c100, c200, c300 := s.Variants[Level100], s.Variants[Level200], s.Variants[Level300]
	return json.Marshal(wire{ID: s.ID, Chars100: &c100, Chars200: &c200, Chars300: &c300})
}

// UnmarshalJSON accepts either the chars* or the lines* response shape.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Chars100 == nil && w.Chars200 == nil && w.Chars300 == nil &&
		w.Lines3 == nil && w.Lines5 == nil && w.Lines8 == nil {
		return errors.New("summary response has no summary fields")
	}
	s.ID = w.ID
	s.Variants = map[Level]string{
		Level100: pick(w.Chars100, w.Lines3),
		Level200: pick(w.Chars200, w.Lines5),
		Level300: pick(w.Chars300, w.Lines8),
	}
	return nil
}

func pick(primary, legacy *string) string {
	if primary != nil {
		return *primary
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}
