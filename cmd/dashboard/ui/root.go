package ui

import tea "github.com/charmbracelet/bubbletea"

type screen int

const (
	screenLogin screen = iota
	screenDashboard
	screenDetail
)

// RootModel owns the screen state machine: login, agent dashboard, agent
// detail. Child models talk to it through messages only.
type RootModel struct {
	API       *API
	Screen    screen
	Login     LoginModel
	Dashboard DashboardModel
	Detail    DetailModel
	width     int
	height    int
}

func NewRootModel() RootModel {
	api := NewAPI()
	return RootModel{
		API:    api,
		Screen: screenLogin,
		Login:  NewLoginModel(api),
		width:  100,
		height: 30,
	}
}

func (m RootModel) Init() tea.Cmd { return m.Login.Init() }

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case loginOKMsg:
		m.Screen = screenDashboard
		m.Dashboard = NewDashboardModel(m.API, m.width, m.height)
		return m, m.Dashboard.Init()

	case AgentSelectedMsg:
		m.Screen = screenDetail
		m.Detail = NewDetailModel(m.API, msg.AgentID, m.width, m.height)
		return m, m.Detail.Init()

	case BackToDashboardMsg:
		m.Screen = screenDashboard
		return m, m.Dashboard.refreshCmd
	}

	var cmd tea.Cmd
	switch m.Screen {
	case screenLogin:
		m.Login, cmd = m.Login.Update(msg)
	case screenDashboard:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
	case screenDetail:
		m.Detail, cmd = m.Detail.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	switch m.Screen {
	case screenDashboard:
		return m.Dashboard.View()
	case screenDetail:
		return m.Detail.View()
	default:
		return m.Login.View()
	}
}
