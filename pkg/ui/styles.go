package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("205")
	infoColor    = lipgloss.Color("39")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("160")
	subtleColor  = lipgloss.Color("241")

	bannerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	infoBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(infoColor).
			Padding(0, 1).
			Bold(true).
			SetString("INFO")

	successBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(successColor).
			Padding(0, 1).
			Bold(true).
			SetString("SAVED")

	errorBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(errorColor).
			Padding(0, 1).
			Bold(true).
			SetString("ERROR")

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)

// Output is where console messages go. decode --stdout points it at stderr so
// messages never mix with the payload bytes.
var Output io.Writer = os.Stdout

// PrintBanner prints the LabelDrop banner
func PrintBanner() {
	banner := `
 _       _          _ ____
| | __ _| |__   ___| |  _ \ _ __ ___  _ __
| |/ _' | '_ \ / _ \ | | | | '__/ _ \| '_ \
| | (_| | |_) |  __/ | |_| | | | (_) | |_) |
|_|\__,_|_.__/ \___|_|____/|_|  \___/| .__/
                                     |_|
`
	fmt.Fprintln(Output, bannerStyle.Render(strings.Trim(banner, "\n")))
	fmt.Fprintln(Output, subtleStyle.Render("  PDF · PNG · ZPLII · EPL2"))
	fmt.Fprintln(Output)
}

// Info prints an info message
func Info(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(Output, "%s %s\n", infoBadge.String(), textStyle.Render(msg))
}

// Success prints a success message
func Success(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(Output, "%s %s\n", successBadge.String(), textStyle.Render(msg))
}

// Error prints an error message
func Error(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(Output, "%s %s\n", errorBadge.String(), textStyle.Render(msg))
}

// Detail prints an indented, dimmed line.
func Detail(format string, a ...interface{}) {
	fmt.Fprintln(Output, subtleStyle.Render("    "+fmt.Sprintf(format, a...)))
}

// Subtle returns s in the dimmed style.
func Subtle(s string) string {
	return subtleStyle.Render(s)
}
