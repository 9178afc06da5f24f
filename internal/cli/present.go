package cli

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/termdeck/termdeck/pkg/deck"
)

// newPresentCmd creates the present command: an in-terminal stepper over a
// built deck.
func newPresentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "present <deck-dir>",
		Short: "Step through a built deck in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deck.Read(args[0])
			if err != nil {
				return err
			}
			if len(d.Slides) == 0 {
				printWarning("Deck %s has no slides", args[0])
				return nil
			}

			m := presentModel{dir: args[0], slides: d.Slides}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// execDoneMsg reports completion of an executable slide.
type execDoneMsg struct{ err error }

// presentModel is the bubbletea model for slide stepping.
type presentModel struct {
	dir     string
	slides  []deck.Slide
	cursor  int
	execErr error
}

func (m presentModel) Init() tea.Cmd {
	return nil
}

func (m presentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "down", "j", "l", " ", "enter":
			if m.cursor < len(m.slides)-1 {
				m.cursor++
				m.execErr = nil
			}
		case "left", "up", "k", "h", "backspace":
			if m.cursor > 0 {
				m.cursor--
				m.execErr = nil
			}
		case "g", "home":
			m.cursor = 0
			m.execErr = nil
		case "G", "end":
			m.cursor = len(m.slides) - 1
			m.execErr = nil
		case "x":
			s := m.slides[m.cursor]
			if !s.Executable {
				return m, nil
			}
			c := exec.Command(filepath.Join(m.dir, s.Name))
			return m, tea.ExecProcess(c, func(err error) tea.Msg {
				return execDoneMsg{err: err}
			})
		}
	case execDoneMsg:
		m.execErr = msg.err
	}
	return m, nil
}

func (m presentModel) View() string {
	s := m.slides[m.cursor]

	var b strings.Builder
	b.WriteString(s.Text)
	b.WriteString("\n\n")

	hint := "←/→ navigate  q quit"
	if s.Executable {
		hint += "  x run"
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d · ", m.cursor+1, len(m.slides))))
	b.WriteString(StyleTitle.Render(s.Name))
	b.WriteString(StyleDim.Render("  " + hint))

	if m.execErr != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("run failed: %v", m.execErr)))
	}
	return b.String()
}
