package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type detailLoadedMsg struct {
	Info    *AgentInfo
	Results []ResultRow
}

type BackToDashboardMsg struct{}

// DetailModel shows one agent's record, its recent command results, and hosts
// the command form.
type DetailModel struct {
	API     *API
	AgentID string
	Info    *AgentInfo
	Results []ResultRow
	Log     viewport.Model
	Form    CommandFormModel
	InForm  bool
	Err     error
	width   int
	height  int
}

func NewDetailModel(api *API, agentID string, width, height int) DetailModel {
	vp := viewport.New(maxInt(width-4, 40), maxInt(height-18, 5))
	return DetailModel{
		API:     api,
		AgentID: agentID,
		Log:     vp,
		width:   width,
		height:  height,
	}
}

func (m DetailModel) Init() tea.Cmd { return m.refreshCmd }

func (m DetailModel) refreshCmd() tea.Msg {
	info, err := m.API.Info(m.AgentID)
	if err != nil {
		return errMsg(err)
	}
	results, err := m.API.Results(m.AgentID)
	if err != nil {
		return errMsg(err)
	}
	return detailLoadedMsg{Info: info, Results: results}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if m.InForm {
		switch msg := msg.(type) {
		case CommandSentMsg:
			m.InForm = false
			return m, m.refreshCmd
		case tea.KeyMsg:
			if msg.Type == tea.KeyEsc {
				m.InForm = false
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.Form, cmd = m.Form.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refreshCmd
		case "c":
			m.Form = NewCommandFormModel(m.AgentID, m.API, m.width, maxInt(m.height-6, 10))
			m.InForm = true
			return m, m.Form.Init()
		case "esc", "b":
			return m, func() tea.Msg { return BackToDashboardMsg{} }
		case "q":
			return m, tea.Quit
		}

	case detailLoadedMsg:
		m.Err = nil
		m.Info = msg.Info
		m.Results = msg.Results
		m.Log.SetContent(renderResults(msg.Results))

	case errMsg:
		m.Err = msg
	}

	var cmd tea.Cmd
	m.Log, cmd = m.Log.Update(msg)
	return m, cmd
}

func renderResults(results []ResultRow) string {
	if len(results) == 0 {
		return "no command results yet"
	}
	var b strings.Builder
	for _, r := range results {
		status := offlineStyle("FAIL")
		if r.Success {
			status = onlineStyle("OK")
		}
		ts := time.Unix(r.CreatedAt, 0).Format("15:04:05")
		b.WriteString(fmt.Sprintf("[%s] %s %s\n%s\n\n", ts, status, r.CommandID, strings.TrimSpace(r.Output)))
	}
	return b.String()
}

func (m DetailModel) View() string {
	if m.InForm {
		return m.Form.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Agent "+m.AgentID) + "\n\n")
	if m.Info != nil {
		status := offlineStyle("offline")
		if m.Info.Online {
			status = onlineStyle("online")
		}
		b.WriteString(fmt.Sprintf("Host: %s  User: %s  IP: %s  [%s]\n", m.Info.Hostname, m.Info.Username, m.Info.IPAddress, status))
		b.WriteString(fmt.Sprintf("OS: %s\n", m.Info.OS))
		b.WriteString(fmt.Sprintf("CPU %.1f%%  RAM %.1f%%  Disk %.1f%%  last seen %s\n",
			m.Info.Metrics.CPUUsage, m.Info.Metrics.RAMUsage, m.Info.Metrics.DiskUsage,
			time.Unix(m.Info.LastSeen, 0).Format("15:04:05")))
		if len(m.Info.DeviceInfo) > 0 {
			keys := make([]string, 0, len(m.Info.DeviceInfo))
			for k := range m.Info.DeviceInfo {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, fmt.Sprintf("%s=%s", k, m.Info.DeviceInfo[k]))
			}
			b.WriteString(blurredStyle.Render(strings.Join(parts, "  ")) + "\n")
		}
	}
	b.WriteString("\n" + titleStyle.Render("Command results") + "\n")
	b.WriteString(m.Log.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("'c' send command, 'r' refresh, esc back, 'q' quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
