// Package tui renders a live view of a running solve: progress,
// terminal voltage history and the sampled output quantities.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cellsim/internal/solver"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type Sample struct {
	T       float64
	Outputs map[string]float64
}

type doneMsg struct {
	result *solver.Result
	err    error
}

type sampleMsg Sample

// Runner drives the solve while the watch view displays it. It is
// called once in a background goroutine; emit publishes samples.
type Runner func(emit func(Sample)) (*solver.Result, error)

type watch struct {
	modelName string
	duration  float64

	samples <-chan Sample
	done    <-chan doneMsg

	t       float64
	latest  map[string]float64
	history []float64

	finished bool
	result   *solver.Result
	err      error

	width  int
	height int
}

func newWatch(modelName string, duration float64, samples <-chan Sample, done <-chan doneMsg) *watch {
	return &watch{
		modelName: modelName,
		duration:  duration,
		samples:   samples,
		done:      done,
		history:   make([]float64, 0, 256),
		width:     80,
		height:    24,
	}
}

func (w *watch) Init() tea.Cmd { return w.listen() }

func (w *watch) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case s, ok := <-w.samples:
			if ok {
				return sampleMsg(s)
			}
			return <-w.done
		case d := <-w.done:
			return d
		}
	}
}

func (w *watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			return w, tea.Quit
		case "enter":
			if w.finished {
				return w, tea.Quit
			}
		}
		return w, nil
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil
	case sampleMsg:
		w.t = msg.T
		w.latest = msg.Outputs
		if v, ok := msg.Outputs["Terminal voltage"]; ok {
			w.history = append(w.history, v)
			if len(w.history) > 512 {
				w.history = w.history[1:]
			}
		}
		return w, w.listen()
	case doneMsg:
		w.finished = true
		w.result = msg.result
		w.err = msg.err
		return w, nil
	}
	return w, nil
}

func (w *watch) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("c e l l s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	statusIcon := green.Render("●")
	statusText := green.Render("solving")
	if w.finished {
		if w.err != nil {
			statusIcon = yellow.Render("○")
			statusText = yellow.Render("failed: " + w.err.Error())
		} else if w.result != nil && w.result.Terminated {
			statusIcon = magenta.Render("◆")
			statusText = magenta.Render(fmt.Sprintf("event %q at t=%.4f", w.result.EventName, w.result.EventTime))
		} else {
			statusIcon = green.Render("✓")
			statusText = green.Render("complete")
		}
	}
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", statusIcon, cyan.Render(w.modelName), statusText))

	progress := 0.0
	if w.duration > 0 {
		progress = w.t / w.duration
	}
	if progress > 1 {
		progress = 1
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar, dim.Render(fmt.Sprintf("t=%.4f/%.2f", w.t, w.duration))))

	if len(w.history) > 1 {
		spark := sparkline(w.history, 48)
		b.WriteString(fmt.Sprintf("   %s %s\n\n", dim.Render("V"), cyan.Render(spark)))
	}

	names := make([]string, 0, len(w.latest))
	for name := range w.latest {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString("   " + dim.Render(fmt.Sprintf("%-42s", name)) +
			white.Render(fmt.Sprintf("%9.4f", w.latest[name])) + "\n")
	}

	if w.finished && w.result != nil && len(w.result.Metrics) > 0 {
		b.WriteString("\n")
		metricNames := make([]string, 0, len(w.result.Metrics))
		for name := range w.result.Metrics {
			metricNames = append(metricNames, name)
		}
		sort.Strings(metricNames)
		for _, name := range metricNames {
			b.WriteString("   " + dim.Render(fmt.Sprintf("%-42s", name)) +
				magenta.Render(fmt.Sprintf("%9.4f", w.result.Metrics[name])) + "\n")
		}
	}

	if w.finished {
		b.WriteString("\n" + dim.Render("   enter/q quit") + "\n")
	} else {
		b.WriteString("\n" + dim.Render("   q quit") + "\n")
	}

	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		v := data[i*step]
		idx := int((v - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Watch runs the solve under a live view and returns its result.
func Watch(modelName string, duration float64, run Runner) (*solver.Result, error) {
	samples := make(chan Sample, 64)
	done := make(chan doneMsg, 1)

	go func() {
		result, err := run(func(s Sample) {
			select {
			case samples <- s:
			default:
			}
		})
		close(samples)
		done <- doneMsg{result: result, err: err}
	}()

	w := newWatch(modelName, duration, samples, done)
	p := tea.NewProgram(w, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fw := final.(*watch)
	if fw.err != nil {
		return fw.result, fw.err
	}
	return fw.result, nil
}
