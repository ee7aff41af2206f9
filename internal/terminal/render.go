// Package terminal plays receiptsweeper on a line-oriented terminal, printing
// every receipt as a styled strip.
package terminal

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/receiptsweeper/internal/receipt"
)

var (
	paperStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	loseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func styleStatus(status string) string {
	switch {
	case strings.HasSuffix(status, "Game over."):
		return loseStyle.Render(status)
	case strings.HasSuffix(status, "You win."):
		return winStyle.Render(status)
	default:
		return statusStyle.Render(status)
	}
}

// Render draws a print as a numbered receipt strip.
func Render(n int, p receipt.Print) string {
	lines := receipt.Format(p)
	body := make([]string, 0, len(lines)+1)
	body = append(body, headerStyle.Render("#"+strconv.Itoa(n)))
	for _, line := range lines {
		if status, ok := strings.CutPrefix(line, "STATUS: "); ok {
			line = "STATUS: " + styleStatus(status)
		}
		body = append(body, line)
	}
	return paperStyle.Render(strings.Join(body, "\n"))
}
