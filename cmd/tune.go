package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/line-follower-sim/line-follower-sim/follower"
)

var tuneConfigPath string // Tuning config JSON to edit

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Edit the tuning config interactively",
	Long: `A terminal editor for the tuning file used by detect and follow.
Every change is validated against the allowed ranges; the file is written on
save and on exit, so a follow --watch run picks changes up live.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := follower.Load(tuneConfigPath, nil)
		if err != nil {
			logrus.Fatalf("Failed to load tuning config: %v", err)
		}

		final, err := tea.NewProgram(newTuneModel(cfg, tuneConfigPath)).Run()
		if err != nil {
			logrus.Fatalf("Tuning editor failed: %v", err)
		}
		m := final.(tuneModel)
		if m.dirty {
			if err := m.cfg.Save(tuneConfigPath); err != nil {
				logrus.Fatalf("Failed to save tuning config: %v", err)
			}
			fmt.Printf("saved %s\n", tuneConfigPath)
		}
	},
}

// tuneField adapts one Config field to the editor: render it, nudge it.
type tuneField struct {
	name string
	read func(follower.Config) string
	add  func(*follower.Config, int)
}

var tuneFields = []tuneField{
	{"min_val",
		func(c follower.Config) string { return fmt.Sprintf("%d", c.MinVal) },
		func(c *follower.Config, n int) { c.MinVal += n }},
	{"max_val",
		func(c follower.Config) string { return fmt.Sprintf("%d", c.MaxVal) },
		func(c *follower.Config, n int) { c.MaxVal += n }},
	{"hough_threshold",
		func(c follower.Config) string { return fmt.Sprintf("%d", c.HoughThreshold) },
		func(c *follower.Config, n int) { c.HoughThreshold += n }},
	{"min_line_length",
		func(c follower.Config) string { return fmt.Sprintf("%d", c.MinLineLength) },
		func(c *follower.Config, n int) { c.MinLineLength += n }},
	{"max_line_gap",
		func(c follower.Config) string { return fmt.Sprintf("%d", c.MaxLineGap) },
		func(c *follower.Config, n int) { c.MaxLineGap += n }},
	{"rho",
		func(c follower.Config) string { return fmt.Sprintf("%.2f", c.Rho) },
		func(c *follower.Config, n int) { c.Rho = math.Round((c.Rho+0.05*float64(n))*100) / 100 }},
}

type tuneKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Dec    key.Binding
	Inc    key.Binding
	BigDec key.Binding
	BigInc key.Binding
	Reset  key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func (k tuneKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Dec, k.Inc, k.Reset, k.Save, k.Quit}
}

func (k tuneKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Dec, k.Inc, k.BigDec, k.BigInc},
		{k.Reset, k.Save, k.Quit},
	}
}

var tuneKeys = tuneKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "select")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "select")),
	Dec:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "-1")),
	Inc:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "+1")),
	BigDec: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+left", "-10")),
	BigInc: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+right", "+10")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "defaults")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	tuneTitleStyle    = lipgloss.NewStyle().Bold(true)
	tuneSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tuneStatusStyle   = lipgloss.NewStyle().Faint(true)
	tuneErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type tuneModel struct {
	cfg    follower.Config
	path   string
	cursor int
	dirty  bool
	status string
	bad    bool
	help   help.Model
}

func newTuneModel(cfg follower.Config, path string) tuneModel {
	return tuneModel{cfg: cfg, path: path, help: help.New()}
}

func (m tuneModel) Init() tea.Cmd { return nil }

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tuneKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, tuneKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, tuneKeys.Down):
			if m.cursor < len(tuneFields)-1 {
				m.cursor++
			}
		case key.Matches(msg, tuneKeys.Dec):
			m = m.adjust(-1)
		case key.Matches(msg, tuneKeys.Inc):
			m = m.adjust(1)
		case key.Matches(msg, tuneKeys.BigDec):
			m = m.adjust(-10)
		case key.Matches(msg, tuneKeys.BigInc):
			m = m.adjust(10)
		case key.Matches(msg, tuneKeys.Reset):
			m.cfg = follower.DefaultConfig()
			m.dirty = true
			m.status, m.bad = "defaults restored", false
		case key.Matches(msg, tuneKeys.Save):
			if err := m.cfg.Save(m.path); err != nil {
				m.status, m.bad = err.Error(), true
			} else {
				m.dirty = false
				m.status, m.bad = "saved "+m.path, false
			}
		}
	}
	return m, nil
}

// adjust nudges the selected field, keeping the config valid: a change the
// ranges reject is shown, not applied.
func (m tuneModel) adjust(n int) tuneModel {
	next := m.cfg
	tuneFields[m.cursor].add(&next, n)
	if err := next.Validate(); err != nil {
		m.status, m.bad = err.Error(), true
		return m
	}
	m.cfg, m.dirty = next, true
	m.status, m.bad = "", false
	return m
}

func (m tuneModel) View() string {
	var b strings.Builder
	b.WriteString(tuneTitleStyle.Render(fmt.Sprintf("tuning %s", m.path)))
	if m.dirty {
		b.WriteString(tuneStatusStyle.Render("  (unsaved)"))
	}
	b.WriteString("\n\n")

	for i, f := range tuneFields {
		line := fmt.Sprintf("%-16s %s", f.name, f.read(m.cfg))
		if i == m.cursor {
			b.WriteString(tuneSelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		style := tuneStatusStyle
		if m.bad {
			style = tuneErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(tuneKeys))
	return b.String()
}

func init() {
	tuneCmd.Flags().StringVar(&tuneConfigPath, "config", "tuning.json", "Tuning config JSON file to edit")

	rootCmd.AddCommand(tuneCmd)
}
