package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/task"
)

var (
	heatmapLow  = "#1b1f24"
	heatmapHigh = "#39d353"
	// levels used when color is off, indexed by intensity.
	plainCells = []string{"·", "░", "▒", "▓", "█"}
)

// Palette blends low to high in Lab space, one color per intensity level.
func Palette(low, high string, levels int) ([]string, error) {
	a, err := colorful.Hex(low)
	if err != nil {
		return nil, fmt.Errorf("printers: palette: %w", err)
	}
	b, err := colorful.Hex(high)
	if err != nil {
		return nil, fmt.Errorf("printers: palette: %w", err)
	}
	out := make([]string, levels)
	for i := range out {
		t := 0.0
		if levels > 1 {
			t = float64(i) / float64(levels-1)
		}
		out[i] = a.BlendLab(b, t).Clamped().Hex()
	}
	return out, nil
}

// Heatmap prints a year of daily focus minutes as a grid of weeks, Sunday on
// top, oldest week on the left.
func (pp *PrettyPrint) Heatmap(h session.Heatmap, plain bool) error {
	dates := h.Dates()
	if len(dates) == 0 {
		return nil
	}
	first, err := task.ParseDate(dates[0])
	if err != nil {
		return err
	}

	var styles []lipgloss.Style
	if !plain {
		palette, err := Palette(heatmapLow, heatmapHigh, len(plainCells))
		if err != nil {
			return err
		}
		for _, c := range palette {
			styles = append(styles, lipgloss.NewStyle().Foreground(lipgloss.Color(c)))
		}
	}

	offset := int(first.Weekday())
	weeks := (offset + len(dates) + 6) / 7
	rows := make([][]string, 7)
	for r := range rows {
		rows[r] = make([]string, weeks)
		for c := range rows[r] {
			rows[r][c] = " "
		}
	}
	for i, date := range dates {
		level := session.Intensity(h[date])
		cell := plainCells[level]
		if !plain {
			cell = styles[level].Render("■")
		}
		slot := offset + i
		rows[slot%7][slot/7] = cell
	}

	labels := []string{"S", "M", "T", "W", "T", "F", "S"}
	for r, row := range rows {
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", labels[r], strings.Join(row, ""))
	}

	legend := make([]string, len(plainCells))
	for i := range plainCells {
		legend[i] = plainCells[i]
		if !plain {
			legend[i] = styles[i].Render("■")
		}
	}
	_, _ = fmt.Fprintf(pp.out(), "  less %s more\n\n", strings.Join(legend, ""))
	return nil
}
