package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinedeck/internal/tmdb"
)

// listRow is one line of a selectable list.
type listRow struct {
	title  string
	meta   string
	badge  string
	marked bool
}

const (
	listHeaderLines  = 2
	listPreviewLines = 3
)

// renderList renders rows with the selected row highlighted and scrolled
// into view.
func (m Model) renderList(rows []listRow, selected, width, height int) string {
	if height <= 0 || len(rows) == 0 {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(start+height, len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		marker := "  "
		if row.marked {
			marker = "★ "
		}
		right := row.meta
		if row.badge != "" {
			right += "  " + row.badge
		}
		titleWidth := max(width-lipgloss.Width(marker)-lipgloss.Width(right)-4, 4)
		title := padRight(truncate(row.title, titleWidth), titleWidth)

		if i == selected {
			plain := " " + marker + title + "  " + right
			lines = append(lines, styles.Selected.Width(width).Render(plain))
			continue
		}

		line := bg.Space() + bg.Render(marker, styles.WarningText) +
			bg.Render(title, styles.Text) + bg.Spaces(2) +
			bg.Render(row.meta, styles.MutedText)
		if row.badge != "" {
			line += bg.Spaces(2) + styles.StatusStyle(row.badge).Render(row.badge)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderListPage lays out a header, the list and a wrapped preview of the
// selected row.
func (m Model) renderListPage(header []string, rows []listRow, selected int, preview string) string {
	width, height := m.contentSize()
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	lines := make([]string, 0, height)
	for i := 0; i < listHeaderLines; i++ {
		if i < len(header) {
			lines = append(lines, header[i])
		} else {
			lines = append(lines, "")
		}
	}

	listHeight := m.listHeight()
	list := m.renderList(rows, selected, width, listHeight)
	listLines := strings.Split(list, "\n")
	for i := 0; i < listHeight; i++ {
		if i < len(listLines) {
			lines = append(lines, listLines[i])
		} else {
			lines = append(lines, "")
		}
	}

	if preview != "" && height >= listHeaderLines+listPreviewLines+1 {
		lines = append(lines, bg.Render(strings.Repeat("─", max(width-2, 1)), styles.FaintText))
		wrapped := wrap(preview, max(width-2, 10))
		for i := 0; i < listPreviewLines-1; i++ {
			if i >= len(wrapped) {
				break
			}
			text := wrapped[i]
			if i == listPreviewLines-2 && len(wrapped) > listPreviewLines-1 {
				text = truncate(text+" ...", max(width-2, 10))
			}
			lines = append(lines, bg.Space()+bg.Render(text, styles.MutedText))
		}
	}
	return strings.Join(lines, "\n")
}

// movieRows converts movies to list rows, starring favourites.
func (m Model) movieRows(movies []tmdb.Movie) []listRow {
	rows := make([]listRow, len(movies))
	for i, mv := range movies {
		meta := fmt.Sprintf("★ %.1f", mv.VoteAverage)
		if year := yearOf(mv.ReleaseDate); year != "" {
			meta = year + "  " + meta
		}
		rows[i] = listRow{
			title:  mv.Title,
			meta:   meta,
			badge:  tmdb.StatusLabel(mv),
			marked: m.snapshot.Favourites.Contains(mv.ID),
		}
	}
	return rows
}

// overview returns a movie's overview or the placeholder text.
func overview(mv tmdb.Movie) string {
	if text := strings.TrimSpace(mv.Overview); text != "" {
		return text
	}
	return "No description available."
}
