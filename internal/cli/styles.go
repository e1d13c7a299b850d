package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand colors shared by the CLI surfaces.
const (
	colorPrimary = "#C45A3C"
	colorSuccess = "#34D399"
	colorWarn    = "#FBBF24"
	colorMuted   = "#6B7280"
)

var (
	cliTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true)

	cliMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	cliWarn = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorWarn))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorSuccess)).
			Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)).
			Bold(true)
)

// kvPair is a label/value line inside a rendered card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key: value lines.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%-*s  %s",
			width+1, p.key+":", p.value))
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard renders a bordered card with a title and detail blocks.
func renderSuccessCard(title string, details ...string) string {
	body := cardTitleStyle.Render(title)
	for _, d := range details {
		if d == "" {
			continue
		}
		body += "\n" + d
	}
	return cardStyle.Render(body)
}

// PrintBanner prints the skel banner with the running version.
func PrintBanner(version string) {
	fmt.Println(cliTitle.Render("skel") + cliMuted.Render(" "+version))
}

// PrintWelcomeMessage prints the interactive-mode introduction.
func PrintWelcomeMessage() {
	fmt.Println(cliMuted.Render("Answer a few questions to scaffold your project. Press Ctrl+C to cancel."))
	fmt.Println()
}

// GitInstallHint returns a platform-appropriate git installation hint.
func GitInstallHint() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: xcode-select --install (or brew install git)"
	case "windows":
		return "Install from: https://git-scm.com/download/win"
	default:
		return "Install with your package manager, e.g.: apt install git"
	}
}
