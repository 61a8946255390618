package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rvcc/internal/cc"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	regNameColor   = color.New(color.FgCyan)
	emptySlotColor = color.New(color.Faint)
	byRefColor     = color.New(color.FgYellow)
)

// WritePretty renders an aligned, optionally colorized register/stack table.
// With colorize false the output is plain text with the same alignment.
func WritePretty(w io.Writer, s *cc.State, colorize bool) {
	paint := func(c *color.Color, text string) string {
		if !colorize {
			return text
		}
		return c.Sprint(text)
	}
	section := func(title string) string {
		if !colorize {
			return title
		}
		return sectionStyle.Render(title)
	}
	slot := func(name string) string {
		switch trimmed := strings.TrimRight(name, " "); {
		case trimmed == "?":
			return paint(emptySlotColor, name)
		case strings.HasPrefix(trimmed, "&"):
			return paint(byRefColor, name)
		default:
			return name
		}
	}

	named := s.NamedArgs()
	if len(named) > 0 {
		fmt.Fprintln(w, section("Args"))
		width := 0
		for _, na := range named {
			if l := runewidth.StringWidth(na.Name); l > width {
				width = l
			}
		}
		for _, na := range named {
			fmt.Fprintf(w, "  %s  %s\n", pad(na.Name, width), na.Type)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, section("GPRs"))
	for i, ty := range s.Gprs {
		fmt.Fprintf(w, "  %s  %s\n", paint(regNameColor, pad(fmt.Sprintf("a%d", i), 3)), slot(s.Name(ty)))
	}

	if s.HasFloat() {
		fmt.Fprintln(w, section("FPRs"))
		for i, ty := range s.Fprs {
			fmt.Fprintf(w, "  %s  %s\n", paint(regNameColor, pad(fmt.Sprintf("fa%d", i), 3)), slot(s.Name(ty)))
		}
	}

	fmt.Fprintln(w, section("Stack"))
	if len(s.Stack) == 0 {
		fmt.Fprintf(w, "  %s\n", paint(emptySlotColor, "(empty)"))
		return
	}
	offs := s.StackOffsets()
	width := 0
	names := make([]string, len(s.Stack))
	for i, ty := range s.Stack {
		names[i] = s.Name(ty)
		if l := runewidth.StringWidth(names[i]); l > width {
			width = l
		}
	}
	for i := range s.Stack {
		// Pad before colorizing: escape sequences would skew width math.
		fmt.Fprintf(w, "  %s  oldsp+%d\n", slot(pad(names[i], width)), offs[i])
	}
}

// pad right-pads text to the given display width.
func pad(text string, width int) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}
