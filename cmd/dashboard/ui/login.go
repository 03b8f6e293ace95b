package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type errMsg error

type loginOKMsg struct{}

const (
	inputURL = iota
	inputUsername
	inputPassword
)

type LoginModel struct {
	API      *API
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

func NewLoginModel(api *API) LoginModel {
	inputs := make([]textinput.Model, 3)

	inputs[inputURL] = textinput.New()
	inputs[inputURL].Placeholder = "http://127.0.0.1:8000"
	inputs[inputURL].Prompt = "Relay URL: "
	inputs[inputURL].SetValue("http://127.0.0.1:8000")
	inputs[inputURL].PromptStyle = focusedStyle
	inputs[inputURL].Focus()

	inputs[inputUsername] = textinput.New()
	inputs[inputUsername].Placeholder = "admin"
	inputs[inputUsername].Prompt = "Username:  "

	inputs[inputPassword] = textinput.New()
	inputs[inputPassword].Placeholder = "password"
	inputs[inputPassword].EchoMode = textinput.EchoPassword
	inputs[inputPassword].Prompt = "Password:  "

	return LoginModel{API: api, Inputs: inputs}
}

func (m LoginModel) Init() tea.Cmd { return textinput.Blink }

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.loginCmd
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}
	case errMsg:
		m.Err = msg
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.Inputs[m.FocusIdx].PromptStyle = blurredStyle
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.Inputs[m.FocusIdx].PromptStyle = focusedStyle
	m.Inputs[m.FocusIdx].Focus()
}

func (m *LoginModel) prevInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.Inputs[m.FocusIdx].PromptStyle = blurredStyle
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].PromptStyle = focusedStyle
	m.Inputs[m.FocusIdx].Focus()
}

func (m LoginModel) loginCmd() tea.Msg {
	url := strings.TrimRight(m.Inputs[inputURL].Value(), "/")
	if err := m.API.Login(url, m.Inputs[inputUsername].Value(), m.Inputs[inputPassword].Value()); err != nil {
		return errMsg(err)
	}
	return loginOKMsg{}
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SysAI Relay - Operator Login") + "\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab to switch fields, Enter to submit, Ctrl+C to quit"))
	if m.Err != nil {
		b.WriteString("\n\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
