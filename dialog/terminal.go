package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bridge"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// terminal runs an interactive picker on a terminal.
type terminal struct {
	in  io.Reader
	out io.Writer
	dir string
}

// Terminal returns a picker that asks interactively on a terminal. Load
// requests browse dir with a file list restricted to the filter's
// extensions; save requests prompt for a file name in dir, pre-filled with
// the suggested name. esc or ctrl+c dismisses either dialog.
func Terminal(in io.Reader, out io.Writer, dir string) bridge.Picker {
	return &terminal{in: in, out: out, dir: dir}
}

func (t *terminal) directory() string {
	if t.dir != "" {
		return t.dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (t *terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, hhsav.ErrCancelled
		}
		return nil, err
	}
	return final, nil
}

func (t *terminal) PickLoad(ctx context.Context, filter bridge.Filter) (string, error) {
	fp := filepicker.New()
	fp.CurrentDirectory = t.directory()
	fp.AllowedTypes = dotted(filter.Extensions)

	final, err := t.run(ctx, loadModel{picker: fp, title: filter.Name})
	if err != nil {
		return "", err
	}
	m := final.(loadModel)
	if m.selected == "" {
		return "", hhsav.ErrCancelled
	}
	return m.selected, nil
}

func (t *terminal) PickSave(ctx context.Context, filter bridge.Filter, suggestedName string) (string, error) {
	input := textinput.New()
	input.Placeholder = suggestedName
	input.SetValue(suggestedName)
	input.Focus()

	final, err := t.run(ctx, saveModel{input: input, title: filter.Name, dir: t.directory()})
	if err != nil {
		return "", err
	}
	m := final.(saveModel)
	if m.selected == "" {
		return "", hhsav.ErrCancelled
	}
	return withExtension(m.selected, filter.Extensions), nil
}

// loadModel wraps the file list.
type loadModel struct {
	picker   filepicker.Model
	title    string
	selected string
}

func (m loadModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m loadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// esc cancels here; the list still goes up a directory on left,
	// backspace, or h.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	return m, cmd
}

func (m loadModel) View() string {
	if m.selected != "" {
		return ""
	}
	return titleStyle.Render(m.title) + "\n" + m.picker.View() + "\n" + hintStyle.Render("enter: open  esc/q: cancel")
}

// saveModel prompts for a file name.
type saveModel struct {
	input    textinput.Model
	title    string
	dir      string
	selected string
}

func (m saveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m saveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			if !filepath.IsAbs(name) {
				name = filepath.Join(m.dir, name)
			}
			m.selected = name
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m saveModel) View() string {
	if m.selected != "" {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		titleStyle.Render(m.title),
		m.input.View(),
		hintStyle.Render("saving in "+m.dir+"  enter: save  esc: cancel"),
	)
}

// dotted prefixes each extension with a dot, as the file list expects.
func dotted(exts []string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = "." + strings.TrimPrefix(ext, ".")
	}
	return out
}

// withExtension appends the first allowed extension when name has none of
// them.
func withExtension(name string, exts []string) string {
	if len(exts) == 0 {
		return name
	}
	for _, ext := range dotted(exts) {
		if strings.EqualFold(filepath.Ext(name), ext) {
			return name
		}
	}
	return name + dotted(exts)[0]
}
