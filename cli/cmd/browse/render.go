package browse

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	declStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	groupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	highlight   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

const ellipsis = "..."

// renderMatch renders one list row with the matched characters highlighted,
// truncated to width.
func renderMatch(match fuzzy.Match, selected bool, width int) string {
	str := match.Str
	if width > len(ellipsis)+2 && len(str) > width-2 {
		str = str[:width-2-len(ellipsis)] + ellipsis
	}

	if selected {
		return selectedStyle.Render("> " + str)
	}

	var b strings.Builder

	b.WriteString("  ")

	for i := range len(str) {
		ch := str[i : i+1]
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(ch))
		} else {
			b.WriteString(matchStyle.Render(ch))
		}
	}

	return b.String()
}
