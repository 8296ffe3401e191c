// Package render formats the work-day status for the terminal.
package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/workfetch/internal/schedule"
	"github.com/verte-zerg/workfetch/internal/workday"
)

const (
	labelWidth = 18
	logoGap    = 4
	separator  = "-----------------------------------"
)

var logoLines = []string{
	"##################",
	"##=====######=====",
	"###:   +####=   :#",
	"###-   :####:   -#",
	"####    *##*    ##",
	"####:   -##-   :##",
	"####+   .##.   +##",
	"#####    **    ###",
	"#####:   ::   :###",
	"#####+   ..   +###",
	"######       .####",
	"######:      -####",
	"######========####",
	"##################",
}

type tone int

const (
	toneLabel tone = iota
	toneStart
	toneRounded
	toneDuration
	toneEnd
	toneRemaining
	toneDone
	toneDim
	toneNote
)

var tones = map[tone]lipgloss.Style{
	toneLabel:     lipgloss.NewStyle().Bold(true),
	toneStart:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
	toneRounded:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	toneDuration:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	toneEnd:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	toneRemaining: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	toneDone:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	toneDim:       lipgloss.NewStyle().Faint(true),
	toneNote:      lipgloss.NewStyle().Bold(true),
}

// Entry is one line of the status view.
type Entry struct {
	Label string
	Value string
	tone  tone
	kind  entryKind
}

type entryKind int

const (
	kindPair entryKind = iota
	kindSeparator
	kindNote
)

// Options controls the text layout.
type Options struct {
	// Logo shows the logo beside the entries.
	Logo bool
	// Width is the terminal width; zero means unknown.
	Width int
}

// Entries lists the lines shown for a status.
func Entries(st workday.Status) []Entry {
	res := st.Result
	entries := []Entry{
		{Label: st.Source.Label(), Value: st.Start.Format("15:04:05"), tone: toneStart},
		{Label: "Rounded Start", Value: res.RoundedStart.Format("15:04"), tone: toneRounded},
		{Value: separator, kind: kindSeparator},
		{Label: "Target Work Time", Value: schedule.FormatDuration(res.WorkMinutes), tone: toneDuration},
		{Label: "Break Time", Value: schedule.FormatDuration(res.BreakMinutes), tone: toneDuration},
		{Label: "End of Day", Value: res.EndOfDay.Format("15:04"), tone: toneEnd},
		{Value: separator, kind: kindSeparator},
	}
	if res.Done() {
		entries = append(entries,
			Entry{Label: "Remaining", Value: "DONE!", tone: toneDone},
			Entry{Value: "You have reached your goal for today.", kind: kindNote, tone: toneNote},
		)
	} else {
		entries = append(entries, Entry{Label: "Remaining", Value: schedule.FormatDuration(res.RemainingMinutes), tone: toneRemaining})
	}
	return entries
}

// Lines returns the styled entry lines without the logo.
func Lines(st workday.Status) []string {
	return formatEntries(Entries(st))
}

// Text renders the status view.
func Text(st workday.Status, opts Options) string {
	lines := Lines(st)
	logo := opts.Logo && fitsLogo(lines, opts.Width)

	var b strings.Builder
	b.WriteByte('\n')
	if !logo {
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		return b.String()
	}

	width := logoWidth()
	rows := max(len(logoLines), len(lines))
	for i := 0; i < rows; i++ {
		logoPart := ""
		if i < len(logoLines) {
			logoPart = logoLines[i]
		}
		entryPart := ""
		if i < len(lines) {
			entryPart = lines[i]
		}
		row := padCell(logoPart, width, false) + strings.Repeat(" ", logoGap) + entryPart
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func formatEntries(entries []Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.kind {
		case kindSeparator:
			lines = append(lines, tones[toneDim].Render(e.Value))
		case kindNote:
			lines = append(lines, tones[e.tone].Render(e.Value))
		default:
			label := tones[toneLabel].Render(e.Label)
			if pad := labelWidth - lipgloss.Width(label); pad > 0 {
				label += strings.Repeat(" ", pad)
			}
			lines = append(lines, label+" : "+tones[e.tone].Render(e.Value))
		}
	}
	return lines
}

func logoWidth() int {
	width := 0
	for _, line := range logoLines {
		if w := displayWidth(line); w > width {
			width = w
		}
	}
	return width
}

func fitsLogo(lines []string, width int) bool {
	if width <= 0 {
		return true
	}
	widest := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > widest {
			widest = w
		}
	}
	return logoWidth()+logoGap+widest <= width
}

// TerminalWidth returns the width of stdout, or zero when it is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
