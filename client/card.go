package client

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"czardeck/game"
)

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrRed    = lipgloss.Color("#f85149")
	clrWhite  = lipgloss.Color("#e6edf3")
	clrTitle  = lipgloss.Color("#58a6ff")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// cardWidth is the interior text width of a rendered card.
const cardWidth = 20

// cardFace renders one card. prompt distinguishes the round's black prompt
// card from a white candidate; selected is purely a visual flag set by the
// owning view from the snapshot, the face itself carries no behavior.
type cardFace struct {
	card     game.Card
	prompt   bool
	selected bool
}

func (c *cardFace) setSelected(selected bool) {
	c.selected = selected
}

func (c *cardFace) render(cursor bool) string {
	border := clrBorder
	switch {
	case c.selected:
		border = clrGold
	case cursor:
		border = clrTitle
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cardWidth).
		Padding(0, 1)

	if c.prompt {
		style = style.Foreground(clrWhite).Bold(true)
	} else {
		style = style.Foreground(clrSubtle)
		if c.selected || cursor {
			style = style.Foreground(clrWhite)
		}
	}

	body := c.card.Text
	if c.selected {
		body += "\n\n" + fg(clrGold).Render("● played")
	}

	return style.Render(body)
}

// cardRow lays faces out horizontally, wrapping onto further rows when the
// terminal is too narrow to fit them all side by side.
func cardRow(faces []cardFace, cursor int, maxWidth int) string {
	if len(faces) == 0 {
		return fg(clrSubtle).Render("(no cards)")
	}

	perRow := maxWidth / (cardWidth + 4)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(faces); start += perRow {
		end := start + perRow
		if end > len(faces) {
			end = len(faces)
		}
		rendered := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			rendered = append(rendered, faces[i].render(i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return strings.Join(rows, "\n")
}
