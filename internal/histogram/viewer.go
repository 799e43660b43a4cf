package histogram

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultWidth = 60

// Viewer is a bubbletea model that shows one histogram until any key is
// pressed
type Viewer struct {
	title  string
	hist   Histogram
	width  int
	styles Styles
}

// NewViewer creates a viewer titled "<name> Distribution"
func NewViewer(name string, h Histogram) Viewer {
	return Viewer{
		title:  fmt.Sprintf("%s Distribution", name),
		hist:   h,
		width:  defaultWidth,
		styles: DefaultStyles(),
	}
}

// Init initializes the model.
func (v Viewer) Init() tea.Cmd {
	return nil
}

// Update quits on any key press and tracks the terminal width
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, tea.Quit
	case tea.WindowSizeMsg:
		v.width = msg.Width
	}
	return v, nil
}

// View renders the chart.
func (v Viewer) View() string {
	return Render(v.title, v.hist, v.width, v.styles) +
		"\n" + v.styles.Muted.Render("press any key to close")
}

// Display buckets scores and shows them until the viewer is dismissed or ctx
// is done. opts are appended to the program options.
func Display(ctx context.Context, name string, scores []float64, edges []float64, opts ...tea.ProgramOption) error {
	h, err := Bucket(scores, edges)
	if err != nil {
		return err
	}

	options := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, opts...)

	p := tea.NewProgram(NewViewer(name, h), options...)
	if _, err := p.Run(); err != nil {
		// 컨텍스트 취소는 정상 종료로 취급
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("histogram viewer: %w", err)
	}

	return nil
}
