// Package output renders command results for terminals, markdown consumers
// and machine readers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"     // text on a TTY, markdown otherwise
	ModeText     Mode = "text"     // styled terminal output
	ModeMarkdown Mode = "markdown" // plain markdown
	ModeJSON     Mode = "json"     // machine-readable
)

// ValidModes lists the accepted --output values.
func ValidModes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}
}

// ParseMode validates s as an output mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeMarkdown, "md":
		return ModeMarkdown, nil
	case ModeJSON:
		return ModeJSON, nil
	}
	return "", fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(ValidModes(), ", "))
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer that detects whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	lr := lipgloss.NewRenderer(out)
	if isTTY {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}

// EffectiveMode resolves auto to text on a TTY and markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the style set for text mode.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the diagnostic output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a level 1 or 2 heading in the current mode.
func (r *Renderer) Header(level int, title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(strings.Repeat("#", level) + " " + title)
		r.Println("")
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(title))
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	r.status(r.styles.Success, "✓", msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	r.status(r.styles.Warning, "!", msg)
}

// Error prints an error message to the error writer.
func (r *Renderer) Error(msg string) {
	line := "✗ " + msg
	if r.EffectiveMode() == ModeText {
		line = r.styles.Error.Render(line)
	}
	_, _ = fmt.Fprintln(r.errOut, line)
}

// Muted prints de-emphasized text.
func (r *Renderer) Muted(msg string) {
	if r.EffectiveMode() == ModeText {
		msg = r.styles.Muted.Render(msg)
	}
	r.Println(msg)
}

func (r *Renderer) status(style lipgloss.Style, icon, msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(style.Render(icon + " " + msg))
		return
	}
	r.Println(icon + " " + msg)
}

// StatusLine prints an item with a status icon.
func (r *Renderer) StatusLine(name, status, detail string) {
	icon, style := "-", r.styles.Muted
	switch status {
	case "success", "done":
		icon, style = "✓", r.styles.Success
	case "failed", "error":
		icon, style = "✗", r.styles.Error
	case "warning":
		icon, style = "!", r.styles.Warning
	}

	line := icon + " " + name
	if detail != "" {
		line += " (" + detail + ")"
	}
	if r.EffectiveMode() == ModeText {
		line = style.Render(icon) + " " + name
		if detail != "" {
			line += " " + r.styles.Muted.Render("("+detail+")")
		}
	} else {
		line = "- " + line
	}
	r.Println(line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
