// Package clipboard copies summary text to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("no system clipboard available")

var clipboardWrite = clipboard.WriteAll

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows clipboard API, whichever atotto/clipboard finds).
type System struct{}

func (System) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}
