// Package histogram buckets assignment scores and renders them as a
// horizontal bar chart in the terminal.
package histogram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidEdges is returned for fewer than two or non-increasing edges
var ErrInvalidEdges = errors.New("histogram edges must be at least two strictly increasing values")

// DefaultEdges are the fixed percent buckets
var DefaultEdges = []float64{0, 25, 50, 75, 100}

// Histogram holds per-bin counts. Bin i covers [Edges[i], Edges[i+1]); the
// last bin also includes its right edge.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// Bucket counts scores into the bins described by edges.
// Scores outside [edges[0], edges[last]] are not counted.
func Bucket(scores []float64, edges []float64) (Histogram, error) {
	if len(edges) < 2 {
		return Histogram{}, ErrInvalidEdges
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return Histogram{}, ErrInvalidEdges
		}
	}

	h := Histogram{
		Edges:  append([]float64(nil), edges...),
		Counts: make([]int, len(edges)-1),
	}

	last := len(edges) - 1
	for _, s := range scores {
		if s < edges[0] || s > edges[last] {
			continue
		}
		if s == edges[last] {
			h.Counts[last-1]++
			continue
		}
		for i := 0; i < last; i++ {
			if s < edges[i+1] {
				h.Counts[i]++
				break
			}
		}
	}

	return h, nil
}

// Total returns the number of counted scores
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Styles 차트 스타일
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Bar   lipgloss.Style
	Count lipgloss.Style
	Muted lipgloss.Style
}

// DefaultStyles returns the chart palette
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		Bar:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac")),
		Count: lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d")),
	}
}

const (
	barRune     = "█"
	minBarWidth = 10
)

// Render draws h as a bar chart no wider than width cells
func Render(title string, h Histogram, width int, styles Styles) string {
	labels := make([]string, len(h.Counts))
	labelWidth := 0
	for i := range h.Counts {
		labels[i] = fmt.Sprintf("%s-%s", formatEdge(h.Edges[i]), formatEdge(h.Edges[i+1]))
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}

	maxCount := 0
	for _, c := range h.Counts {
		maxCount = max(maxCount, c)
	}
	countWidth := len(strconv.Itoa(maxCount))

	// label │ bar count
	barWidth := max(width-labelWidth-countWidth-4, minBarWidth)

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("Number of Students by Percent Score"))
	sb.WriteString("\n\n")

	for i, c := range h.Counts {
		n := 0
		if maxCount > 0 {
			n = c * barWidth / maxCount
		}
		label := styles.Label.Render(fmt.Sprintf("%*s", labelWidth, labels[i]))
		bar := styles.Bar.Render(strings.Repeat(barRune, n))
		sb.WriteString(fmt.Sprintf("%s │ %s %s\n", label, bar, styles.Count.Render(strconv.Itoa(c))))
	}

	sb.WriteString(styles.Muted.Render(fmt.Sprintf("%*s   Percent Score (n=%d)", labelWidth, "", h.Total())))
	sb.WriteString("\n")

	return sb.String()
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
