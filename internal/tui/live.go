package tui

import (
	"fmt"
	"image"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"fancyfolders/internal/colour"
	"fancyfolders/internal/fonts"
	"fancyfolders/internal/generator"
	"fancyfolders/internal/mask"
	"fancyfolders/internal/output"
	"fancyfolders/internal/regen"
	"fancyfolders/internal/style"
)

const scaleStep = 0.1

// Submitter queues regenerations. *regen.Scheduler implements it.
type Submitter interface {
	Submit(req generator.Request) uuid.UUID
	Results() <-chan regen.Result
}

// Writer stores a finished preview and reports its size.
type Writer func(path string, img image.Image) (int64, error)

type LiveOptions struct {
	Style       style.Style
	Weight      fonts.Weight
	Scale       float64
	Tint        *colour.RGB
	Text        string
	PreviewSize int
	// OutPath receives the preview, cropped to the visible folder, after
	// every regeneration.
	OutPath string
	Write   Writer
}

// LiveModel edits a text badge interactively. Every change is submitted to
// the scheduler; only the newest icon is written out.
type LiveModel struct {
	sched   Submitter
	opts    LiveOptions
	text    []rune
	pending uuid.UUID
	busy    bool
	status  string
	failed  bool
	renders int
	written int64
	quit    bool
}

type resultMsg regen.Result

type resultsClosedMsg struct{}

type writtenMsg struct {
	token uuid.UUID
	bytes int64
	err   error
}

func NewLiveModel(sched Submitter, opts LiveOptions) LiveModel {
	if !opts.Weight.Valid() {
		opts.Weight = fonts.DefaultWeight
	}
	if opts.Scale <= 0 {
		opts.Scale = generator.DefaultScale
	}
	if opts.PreviewSize <= 0 {
		opts.PreviewSize = generator.DefaultPreviewSize
	}
	if opts.Write == nil {
		opts.Write = output.WritePNG
	}
	return LiveModel{
		sched: sched,
		opts:  opts,
		text:  []rune(mask.Truncate(opts.Text)),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return listenForResults(m.sched.Results())
}

// Start submits the initial request. Call it before running the program.
func (m LiveModel) Start() LiveModel {
	return m.regenerate()
}

func (m LiveModel) Text() string { return string(m.text) }

func (m LiveModel) Request() generator.Request {
	req := generator.Request{
		Style:       m.opts.Style,
		Method:      generator.MethodNone,
		Scale:       m.opts.Scale,
		Tint:        m.opts.Tint,
		Weight:      m.opts.Weight,
		PreviewSize: m.opts.PreviewSize,
	}
	if strings.TrimSpace(string(m.text)) != "" {
		req.Method = generator.MethodText
		req.Text = string(m.text)
	}
	return req
}

func (m LiveModel) regenerate() LiveModel {
	m.pending = m.sched.Submit(m.Request())
	m.busy = true
	return m
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case resultMsg:
		cmd := listenForResults(m.sched.Results())
		if msg.Token != m.pending {
			return m, cmd
		}
		if msg.Err != nil {
			m.busy = false
			m.failed = true
			m.status = msg.Err.Error()
			return m, cmd
		}
		return m, tea.Batch(cmd, m.write(msg.Token, msg.Style, msg.Icon))
	case writtenMsg:
		if msg.token != m.pending {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.failed = true
			m.status = msg.err.Error()
			return m, nil
		}
		m.failed = false
		m.renders++
		m.written = msg.bytes
		m.status = fmt.Sprintf("wrote %s (%s)", m.opts.OutPath, HumanBytes(msg.bytes))
		return m, nil
	case resultsClosedMsg:
		m.quit = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m LiveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quit = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.text) == 0 {
			return m, nil
		}
		m.text = m.text[:len(m.text)-1]
	case tea.KeyEnter:
		if len(m.text) >= mask.MaxTextLength {
			return m, nil
		}
		m.text = append(m.text, '\n')
	case tea.KeyRunes, tea.KeySpace:
		runes := msg.Runes
		if msg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		room := mask.MaxTextLength - len(m.text)
		if room <= 0 {
			return m, nil
		}
		if len(runes) > room {
			runes = runes[:room]
		}
		m.text = append(m.text, runes...)
	case tea.KeyUp:
		m.opts.Scale = stepScale(m.opts.Scale, scaleStep)
	case tea.KeyDown:
		m.opts.Scale = stepScale(m.opts.Scale, -scaleStep)
	case tea.KeyLeft:
		m.opts.Weight = m.opts.Weight.Lighter()
	case tea.KeyRight:
		m.opts.Weight = m.opts.Weight.Heavier()
	case tea.KeyTab:
		m.opts.Style = m.opts.Style.Next()
	default:
		return m, nil
	}
	return m.regenerate(), nil
}

func (m LiveModel) write(token uuid.UUID, s style.Style, icon *image.NRGBA) tea.Cmd {
	path, write := m.opts.OutPath, m.opts.Write
	return func() tea.Msg {
		n, err := write(path, output.Crop(icon, s.PreviewCrop()))
		return writtenMsg{token: token, bytes: n, err: err}
	}
}

func (m LiveModel) View() string {
	if m.quit {
		return ""
	}

	text := strings.ReplaceAll(string(m.text), "\n", "⏎")
	if text == "" {
		text = dimStyle.Render("(type to add a badge)")
	}

	state := okStyle.Render("ready")
	switch {
	case m.busy:
		state = dimStyle.Render("rendering…")
	case m.failed:
		state = warnStyle.Render("error")
	}

	tintName := "none"
	if m.opts.Tint != nil {
		tintName = Swatch(*m.opts.Tint) + " " + m.opts.Tint.Hex()
	}

	lines := []string{
		titleStyle.Render("fancyfolders 📁 live"),
		labelStyle.Render("Text:   ") + text,
		labelStyle.Render("Style:  ") + m.opts.Style.DisplayName(),
		labelStyle.Render("Weight: ") + m.opts.Weight.String(),
		labelStyle.Render("Scale:  ") + fmt.Sprintf("%.1f ", m.opts.Scale) + barStyle.Render(renderBar(20, (m.opts.Scale-generator.MinScale)/(generator.MaxScale-generator.MinScale))),
		labelStyle.Render("Tint:   ") + tintName,
		labelStyle.Render("State:  ") + state,
	}
	if m.status != "" {
		lines = append(lines, dimStyle.Render(m.status))
	}
	lines = append(lines, dimStyle.Render("type text · enter newline · ↑/↓ scale · ←/→ weight · tab style · esc quit"))
	return strings.Join(lines, "\n")
}

func stepScale(scale, delta float64) float64 {
	s := math.Round((scale+delta)*10) / 10
	return math.Max(generator.MinScale, math.Min(generator.MaxScale, s))
}

func listenForResults(results <-chan regen.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return resultsClosedMsg{}
		}
		return resultMsg(res)
	}
}
