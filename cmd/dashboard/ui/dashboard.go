package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type agentsLoadedMsg []AgentRow

type AgentSelectedMsg struct{ AgentID string }

type DashboardModel struct {
	API    *API
	Table  table.Model
	Agents []AgentRow
	Err    error
}

func NewDashboardModel(api *API, width, height int) DashboardModel {
	columns := []table.Column{
		{Title: "Agent ID", Width: 32},
		{Title: "Hostname", Width: 18},
		{Title: "User", Width: 14},
		{Title: "IP", Width: 15},
		{Title: "OS", Width: 24},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(maxInt(height-10, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return DashboardModel{API: api, Table: t}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (m DashboardModel) Init() tea.Cmd { return m.refreshCmd }

func (m DashboardModel) refreshCmd() tea.Msg {
	agents, err := m.API.ListAgents()
	if err != nil {
		return errMsg(err)
	}
	return agentsLoadedMsg(agents)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refreshCmd
		case "enter":
			selected := m.Table.SelectedRow()
			if len(selected) > 0 {
				id := selected[0]
				return m, func() tea.Msg { return AgentSelectedMsg{AgentID: id} }
			}
		case "q":
			return m, tea.Quit
		}

	case agentsLoadedMsg:
		m.Err = nil
		m.Agents = msg
		rows := make([]table.Row, 0, len(msg))
		for _, a := range msg {
			status := "offline"
			if a.Online {
				status = "online"
			}
			rows = append(rows, table.Row{a.AgentID, a.Hostname, a.Username, a.IPAddress, a.OS, status})
		}
		m.Table.SetRows(rows)

	case errMsg:
		m.Err = msg
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard - Agents") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("'r' refresh, enter for detail, 'q' quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
