package ui

import (
	"fmt"
	"time"

	"argdl/internal/utils"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ProgressMsg struct {
	Bytes int64
}

type DoneMsg struct {
	// Checksum names the verified algorithm, empty when nothing was checked.
	Checksum string
}

type ErrorMsg struct {
	Err error
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// snapshot of the current state of the app
type Model struct {
	filename    string
	totalSize   int64
	acceptRange bool
	downloaded  int64
	progress    progress.Model
	status      string
	checksum    string
	err         error
	startTime   time.Time
	elapsed     time.Duration
}

func InitialModel(filename string, total int64, acceptRange bool) Model {
	p := progress.New(progress.WithDefaultGradient())
	return Model{
		filename:    filename,
		totalSize:   total,
		acceptRange: acceptRange,
		progress:    p,
		status:      "downloading",
		startTime:   time.Now(),
	}
}

func (m Model) Err() error { return m.err }

// Aborted reports whether the user quit before the download finished.
func (m Model) Aborted() bool { return m.status == "aborted" }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.status = "aborted"
			return m, tea.Quit
		}
	case ProgressMsg:
		m.downloaded += msg.Bytes
		if m.totalSize > 0 {
			percent := float64(m.downloaded) / float64(m.totalSize)
			cmd := m.progress.SetPercent(percent)
			return m, cmd
		}
		return m, nil
	case DoneMsg:
		m.status = "done"
		m.checksum = msg.Checksum
		m.elapsed = time.Since(m.startTime)
		return m, tea.Quit
	case ErrorMsg:
		m.err = msg.Err
		m.status = "error"
		return m, tea.Quit
	}

	var cmd tea.Cmd
	var prog tea.Model

	prog, cmd = m.progress.Update(msg)
	m.progress = prog.(progress.Model)
	return m, cmd
}

func (m Model) View() string {
	switch m.status {
	case "error":
		return errStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case "aborted":
		return hintStyle.Render("Download aborted") + "\n"
	case "done":
		line := fmt.Sprintf("Downloaded %s (%s in %.2fs)", m.filename, utils.FormatBytes(m.downloaded), m.elapsed.Seconds())
		if m.checksum != "" {
			line += fmt.Sprintf(", %s checksum ok", m.checksum)
		}
		return okStyle.Render(line) + "\n"
	}

	mode := "Only Streaming"
	if m.acceptRange {
		mode = "Accepts Ranges"
	}

	rate := ""
	if secs := time.Since(m.startTime).Seconds(); secs > 0 {
		rate = utils.FormatRate(float64(m.downloaded) / secs)
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s / %s  %s\n%s\n",
		titleStyle.Render(fmt.Sprintf("Downloading (%s) %s", mode, m.filename)),
		m.progress.View(),
		utils.FormatBytes(m.downloaded),
		utils.FormatBytes(m.totalSize),
		rate,
		hintStyle.Render("Press q to quit"),
	)
}
