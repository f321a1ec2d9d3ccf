// Package tui provides a terminal user interface for sf2sfz
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/sf2sfz/pkg/converter"
	"github.com/james-see/sf2sfz/pkg/soundfont"
)

// Sampler-panel color scheme
var (
	amber     = lipgloss.Color("#FFB000")
	cream     = lipgloss.Color("#F5E6C8")
	walnut    = lipgloss.Color("#3B2A1A")
	dimGray   = lipgloss.Color("#777777")
	alarmRed  = lipgloss.Color("#FF4040")
	meterLime = lipgloss.Color("#A8E10C")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(amber).
			Background(walnut).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(cream).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(amber).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(meterLime).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(alarmRed).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(meterLime).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimGray).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(amber).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateConverting
	StateResult
)

// Action is what the selected menu item does with the picked bank
type Action int

const (
	ActionConvertDir Action = iota
	ActionConvertZip
	ActionInspect
	ActionExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Action      Action
}

var menuItems = []MenuItem{
	{Title: "SF2 → SFZ folder", Description: "Write one .sfz per preset with its WAV samples next to the bank", Action: ActionConvertDir},
	{Title: "SF2 → SFZ zip", Description: "Pack every .sfz and WAV sample into a zip archive", Action: ActionConvertZip},
	{Title: "Inspect bank", Description: "List the presets, instruments and samples of a bank", Action: ActionInspect},
	{Title: "Exit", Description: "Exit the application", Action: ActionExit},
}

// maxListed bounds the presets shown in an inspect result
const maxListed = 12

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	item         MenuItem
	done         doneMsg
	width        int
	height       int
}

// doneMsg signals that the selected action finished
type doneMsg struct {
	output  string
	presets int
	samples int
	summary *converter.BankSummary
	err     error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".sf2", ".sf3"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(amber)

	return Model{
		state:      StateMenu,
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to receive every message while it is shown
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateConverting
			return m, tea.Batch(m.spinner.Tick, m.perform())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case doneMsg:
		m.state = StateResult
		m.done = msg
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		m.item = menuItems[m.menuIndex]
		if m.item.Action == ActionExit {
			return m, tea.Quit
		}
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.done = doneMsg{}
		m.selectedFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) perform() tea.Cmd {
	action, path := m.item.Action, m.selectedFile
	return func() tea.Msg {
		return runAction(action, path)
	}
}

// runAction converts or inspects the bank at path. Conversions are written
// next to the bank: "<name>_sfz/" for folders, "<name>.zip" for archives.
func runAction(action Action, path string) doneMsg {
	base := strings.TrimSuffix(path, filepath.Ext(path))

	switch action {
	case ActionInspect:
		data, err := os.ReadFile(path)
		if err != nil {
			return doneMsg{err: err}
		}
		sf, err := soundfont.Decode(data)
		if err != nil {
			return doneMsg{err: err}
		}
		summary := converter.Inspect(sf)
		return doneMsg{
			presets: len(summary.Presets),
			samples: len(summary.Samples),
			summary: &summary,
		}

	case ActionConvertDir, ActionConvertZip:
		output := base + "_sfz"
		if action == ActionConvertZip {
			output = base + ".zip"
		}
		result, err := converter.New(converter.Options{}).ConvertFile(path, output)
		if err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{
			output:  output,
			presets: len(result.Documents),
			samples: len(result.Samples),
		}
	}

	return doneMsg{err: fmt.Errorf("unknown action %d", action)}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateConverting:
		s.WriteString(m.viewConverting())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT ACTION "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(meterLime).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT SOUNDFONT BANK "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewConverting() string {
	var s strings.Builder

	verb := "Converting"
	if m.item.Action == ActionInspect {
		verb = "Reading"
	}
	s.WriteString(titleStyle.Render(" WORKING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s %s %s...\n", m.spinner.View(), verb, filepath.Base(m.selectedFile)))
	s.WriteString(statusStyle.Render("  " + m.item.Title))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	switch {
	case m.done.err != nil:
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s failed: %s", m.item.Title, m.done.err.Error())))

	case m.done.summary != nil:
		sum := m.done.summary
		s.WriteString(titleStyle.Render(" BANK "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render(fmt.Sprintf("%s (SoundFont %s)", sum.Name, sum.Version)))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("%d presets • %d instruments • %d samples\n\n",
			len(sum.Presets), len(sum.Instruments), len(sum.Samples)))
		for i, p := range sum.Presets {
			if i == maxListed {
				s.WriteString(menuStyle.Render(fmt.Sprintf("… %d more", len(sum.Presets)-maxListed)))
				s.WriteString("\n")
				break
			}
			s.WriteString(menuStyle.Render(fmt.Sprintf("%03d:%03d %-20s %d regions", p.Bank, p.Program, p.Name, p.Regions)))
			s.WriteString("\n")
		}

	default:
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Conversion complete!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Input:   %s\n", filepath.Base(m.selectedFile)))
		s.WriteString(fmt.Sprintf("Output:  %s\n", filepath.Base(m.done.output)))
		s.WriteString(fmt.Sprintf("Presets: %d  Samples: %d", m.done.presets, m.done.samples))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ___ ___ ___    ___ ___ ____
  / __| __|_  )__/ __| __|_  /
  \__ \ _| / /___\__ \ _| / /
  |___/_| /___|  |___/_| /___|
`
	return lipgloss.NewStyle().Foreground(amber).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
