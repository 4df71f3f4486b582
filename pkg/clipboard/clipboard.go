// Package clipboard copies generated text to the user's clipboard.
//
// Text is always emitted as an OSC 52 sequence so copying works over SSH and
// inside terminal multiplexers. When a native clipboard is available it is
// written as well; Copy fails only when neither path succeeds.
package clipboard

import (
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/hashicorp/go-multierror"
)

var (
	writeNative       = clipboard.WriteAll
	nativeUnsupported = func() bool { return clipboard.Unsupported }
	getenv            = os.Getenv
)

// ErrEmpty is returned when there is nothing to copy.
var ErrEmpty = errors.New("nothing to copy")

// Copier writes text to the terminal clipboard and, when present, the native one.
type Copier struct {
	out io.Writer
}

// NewCopier returns a Copier that emits OSC 52 sequences to out.
// A nil out disables the terminal path.
func NewCopier(out io.Writer) *Copier {
	return &Copier{out: out}
}

// Copy places text on the clipboard.
func (c *Copier) Copy(text string) error {
	if text == "" {
		return ErrEmpty
	}

	var result *multierror.Error
	terminalOK := false
	if c.out != nil {
		if _, err := fmt.Fprint(c.out, sequence(text)); err != nil {
			result = multierror.Append(result, fmt.Errorf("osc52: %w", err))
		} else {
			terminalOK = true
		}
	}

	nativeOK := false
	if !nativeUnsupported() {
		if err := writeNative(text); err != nil {
			result = multierror.Append(result, fmt.Errorf("native clipboard: %w", err))
		} else {
			nativeOK = true
		}
	}

	slog.Debug("clipboard_copy",
		"length", len(text),
		"osc52", terminalOK,
		"native", nativeOK,
	)

	if terminalOK || nativeOK {
		return nil
	}
	if result == nil {
		return errors.New("no clipboard available")
	}
	return result.ErrorOrNil()
}

func sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	return seq
}

// EscapeHTML escapes text for embedding in markup or an attribute value.
// Newlines become &#10; so multi-line captions survive inside attributes.
func EscapeHTML(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "&#10;")
}
