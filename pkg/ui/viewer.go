package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
)

// viewerChrome is the number of lines used by the header and footer
const viewerChrome = 2

type viewerKeyMap struct {
	Quit   key.Binding
	Filter key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultViewerKeys() viewerKeyMap {
	return viewerKeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter significance")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// Viewer is a scrollable bubbletea view of a comparison report
type Viewer struct {
	title    string
	result   *compare.ComparisonResult
	theme    Theme
	keys     viewerKeyMap
	viewport viewport.Model
	minLevel compare.Level
	status   string
	statusTy StatusType
	ready    bool
}

// NewViewer creates a viewer for result
func NewViewer(title string, result *compare.ComparisonResult, theme Theme) *Viewer {
	v := &Viewer{
		title:    title,
		result:   result,
		theme:    theme,
		keys:     defaultViewerKeys(),
		viewport: viewport.New(80, 20),
	}
	v.viewport.MouseWheelEnabled = true
	v.refresh()
	return v
}

// Init implements tea.Model
func (v *Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.viewport.Width = msg.Width
		v.viewport.Height = max(1, msg.Height-viewerChrome)
		v.ready = true
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Filter):
			v.minLevel = (v.minLevel + 1) % (compare.High + 1)
			v.refresh()
			return v, nil
		case key.Matches(msg, v.keys.Top):
			v.viewport.GotoTop()
			return v, nil
		case key.Matches(msg, v.keys.Bottom):
			v.viewport.GotoBottom()
			return v, nil
		}

	case ResultUpdatedMsg:
		if msg.Result == nil {
			return v, nil
		}
		v.result = msg.Result
		v.refresh()
		return v, nil

	case StatusUpdateMsg:
		v.status = msg.Message
		v.statusTy = msg.Type
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements tea.Model
func (v *Viewer) View() string {
	header := v.theme.Styles.Heading.Render(v.title)
	if v.status != "" {
		header += "  " + v.theme.GetStatusStyle(v.statusTy).Render(v.status)
	}

	footer := v.theme.Styles.Footer.Render(fmt.Sprintf("%3.f%%  showing %s+  %s  %s  %s",
		v.viewport.ScrollPercent()*100,
		v.minLevel,
		v.keys.Filter.Help().Key+" "+v.keys.Filter.Help().Desc,
		v.keys.Top.Help().Key+"/"+v.keys.Bottom.Help().Key+" top/bottom",
		v.keys.Quit.Help().Key+" "+v.keys.Quit.Help().Desc))

	return lipgloss.JoinVertical(lipgloss.Left, header, v.viewport.View(), footer)
}

// MinSignificance returns the current change filter
func (v *Viewer) MinSignificance() compare.Level {
	return v.minLevel
}

func (v *Viewer) refresh() {
	width := 0
	if v.ready {
		width = v.viewport.Width - 20
	}
	reporter := NewReporter(v.theme, width).WithMinSignificance(v.minLevel)
	v.viewport.SetContent(reporter.RenderComparison(v.title, v.result))
}

// NewProgram wraps the viewer in a full-screen program. Callers may Send
// ResultUpdatedMsg and StatusUpdateMsg to it while it runs.
func NewProgram(v *Viewer, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(v, opts...)
}

// RunViewer shows the viewer until the user quits
func RunViewer(v *Viewer, opts ...tea.ProgramOption) error {
	_, err := NewProgram(v, opts...).Run()
	return err
}
