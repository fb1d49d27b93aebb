// Package render turns pattern documents into terminal, markdown or JSON
// output.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dkoosis/gradekit/pkg/pattern"
)

// Renderer converts a pattern document to formatted output.
type Renderer interface {
	Render(doc pattern.Document) string
}

// Output formats accepted by ForWriter.
const (
	FormatAuto     = "auto"
	FormatTerminal = "terminal"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrUnknownFormat is returned by ForWriter for an unsupported format.
var ErrUnknownFormat = errors.New("render: unknown format")

// ForWriter picks a renderer for w. The auto format renders for the terminal
// when w is a TTY and as markdown otherwise. A set NO_COLOR forces the mono
// theme regardless of themeName.
func ForWriter(format, themeName string, w io.Writer) (Renderer, error) {
	if format == "" || format == FormatAuto {
		format = FormatMarkdown
		if isTerminal(w) {
			format = FormatTerminal
		}
	}
	switch format {
	case FormatTerminal:
		theme := ThemeByName(themeName)
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			theme = MonoTheme()
		}
		return NewTerminal(theme, terminalWidth(w)), nil
	case FormatMarkdown:
		return NewMarkdown(), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write renders doc with r and writes it to w.
func Write(w io.Writer, r Renderer, doc pattern.Document) error {
	_, err := io.WriteString(w, r.Render(doc))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
