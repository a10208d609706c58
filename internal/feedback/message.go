package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

// Diagnostic is implemented by every error the compiler stages return.
type Diagnostic interface {
	error
	Stage() string
	Position() token.Position
}

// Source is the text a diagnostic points into.
type Source struct {
	Filename string
	Lines    []string
}

func NewSource(filename, text string) *Source {
	return &Source{Filename: filename, Lines: strings.Split(text, "\n")}
}

// Render formats err for a terminal. Diagnostics get the form:
//
//	error: <stage> error
//	  --> <filename>:<line>:<column>
//	   |
//	 1 | <offending line of source code>
//	   |      ^ <message>
//
// Any other error renders as a single "error: ..." line. A nil src renders
// the header and message without an excerpt.
func Render(src *Source, err error, withColor bool) string {
	redBold := color.New(color.FgRed, color.Bold)
	blue := color.New(color.FgBlue)
	red := color.New(color.FgRed)
	for _, c := range []*color.Color{redBold, blue, red} {
		if withColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var d Diagnostic
	if !errors.As(err, &d) {
		return redBold.Sprint("error:") + " " + err.Error()
	}

	if src == nil {
		src = &Source{Filename: "<input>"}
	}

	pos := d.Position()
	lineNum := fmt.Sprintf("%d", pos.Line)
	margin := strings.Repeat(" ", len(lineNum))

	var lines []string
	lines = append(lines, redBold.Sprintf("error: %s error", d.Stage()))
	lines = append(lines, fmt.Sprintf(" %s%s %s:%d:%d", margin, blue.Sprint("-->"), src.Filename, pos.Line, pos.Column))

	if pos.Line < 1 || pos.Line > len(src.Lines) {
		lines = append(lines, fmt.Sprintf(" %s %s %s", margin, blue.Sprint("="), message(d)))
		return strings.Join(lines, "\n")
	}

	srcLine := strings.TrimRight(src.Lines[pos.Line-1], "\r")
	lines = append(lines, blue.Sprintf(" %s |", margin))
	lines = append(lines, fmt.Sprintf("%s %s", blue.Sprintf(" %s |", lineNum), srcLine))
	lines = append(lines, fmt.Sprintf("%s %s%s %s",
		blue.Sprintf(" %s |", margin),
		strings.Repeat(" ", caretOffset(srcLine, pos.Column)),
		red.Sprint("^"),
		message(d)))
	return strings.Join(lines, "\n")
}

// caretOffset is the display width of the text before column col (1-based,
// counted in runes). Tabs are kept as a single cell.
func caretOffset(line string, col int) int {
	runes := []rune(line)
	if col-1 < len(runes) {
		runes = runes[:max(col-1, 0)]
	}
	return runewidth.StringWidth(string(runes))
}

// message strips the "<line>:<col>: <Stage> Error: " prefix the stage
// errors carry, since the rendered header already shows both.
func message(d Diagnostic) string {
	msg := d.Error()
	if i := strings.Index(msg, "Error: "); i >= 0 {
		return msg[i+len("Error: "):]
	}
	return msg
}
