// Package view holds the display state of a summary card.
package view

import (
	"context"
	"log"

	"newsum/internal/reflow"
	"newsum/internal/summary"
)

// CopiedMessage confirms a successful clipboard copy.
const CopiedMessage = "클립보드에 복사되었습니다!"

// Copier places text on a clipboard.
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// Card is the display state for one summarization result: the selected
// preset and the wrapping width. Changing the preset never re-requests.
type Card struct {
	result *summary.Summary
	level  summary.Level
	width  int
}

// NewCard shows result at the default preset with the given reflow width.
func NewCard(result *summary.Summary, width int) *Card {
	return &Card{result: result, level: summary.DefaultLevel, width: width}
}

// Level is the selected preset.
func (c *Card) Level() summary.Level {
	return c.level
}

// Width is the reflow width used for Content.
func (c *Card) Width() int {
	return c.width
}

// Summary is the result the card displays.
func (c *Card) Summary() *summary.Summary {
	return c.result
}

// Select switches the displayed preset.
func (c *Card) Select(level summary.Level) error {
	if !level.Valid() {
		return summary.ErrUnknownLevel
	}
	c.level = level
	return nil
}

// Raw is the unformatted variant for the selected preset.
func (c *Card) Raw() string {
	return c.result.Text(c.level)
}

// Content is the selected variant wrapped to the card width.
func (c *Card) Content() string {
	return reflow.Reflow(c.Raw(), c.width)
}

// Copy places the displayed content on the clipboard. A failure is logged
// and returned; callers only confirm to the user on a nil error.
func (c *Card) Copy(ctx context.Context, cp Copier) error {
	if err := cp.Copy(ctx, c.Content()); err != nil {
		log.Printf("[View] copy failed: %v", err)
		return err
	}
	return nil
}
