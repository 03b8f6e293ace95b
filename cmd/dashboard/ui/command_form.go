package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type FormState int

const (
	StateSelecting FormState = iota
	StateFilling
)

type cmdItem struct {
	title, desc string
	index       int
}

func (i cmdItem) Title() string       { return i.title }
func (i cmdItem) Description() string { return i.desc }
func (i cmdItem) FilterValue() string { return i.title }

// CommandSentMsg indicates a command was queued on the relay.
type CommandSentMsg struct{ CommandID string }

type FieldDef struct {
	Name        string
	Placeholder string
	Required    bool
}

// CommandDef describes one dispatchable command type and its payload fields.
type CommandDef struct {
	Type        string
	Description string
	Fields      []FieldDef
}

var availableCommands = []CommandDef{
	{
		Type:        "restart_service",
		Description: "Stop and start a service on the agent machine",
		Fields:      []FieldDef{{Name: "service", Placeholder: "e.g. Spooler", Required: true}},
	},
	{
		Type:        "run_shell",
		Description: "Execute a shell command and capture output",
		Fields:      []FieldDef{{Name: "cmd", Placeholder: "e.g. ipconfig /all", Required: true}},
	},
	{
		Type:        "open_quick_assist",
		Description: "Launch Quick Assist for a remote support session",
	},
	{
		Type:        "shutdown",
		Description: "Shut the machine down (5s delay)",
	},
	{
		Type:        "restart",
		Description: "Reboot the machine (5s delay)",
	},
}

type CommandFormModel struct {
	AgentID  string
	API      *API
	State    FormState
	List     list.Model
	Inputs   []textinput.Model
	Focused  int
	Selected int
	Err      error
}

func NewCommandFormModel(agentID string, api *API, width, height int) CommandFormModel {
	items := make([]list.Item, 0, len(availableCommands))
	for i, cmd := range availableCommands {
		items = append(items, cmdItem{title: cmd.Type, desc: cmd.Description, index: i})
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select Command"
	l.SetShowHelp(false)

	return CommandFormModel{AgentID: agentID, API: api, State: StateSelecting, List: l}
}

func (m CommandFormModel) Init() tea.Cmd { return nil }

func (m CommandFormModel) Update(msg tea.Msg) (CommandFormModel, tea.Cmd) {
	switch m.State {
	case StateSelecting:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			item, ok := m.List.SelectedItem().(cmdItem)
			if !ok {
				return m, nil
			}
			m.Selected = item.index
			def := availableCommands[m.Selected]
			if len(def.Fields) == 0 {
				return m, m.sendCmd(nil)
			}
			m.Inputs = make([]textinput.Model, len(def.Fields))
			for i, f := range def.Fields {
				in := textinput.New()
				in.Placeholder = f.Placeholder
				in.Prompt = f.Name + ": "
				if i == 0 {
					in.Focus()
				}
				m.Inputs[i] = in
			}
			m.Focused = 0
			m.State = StateFilling
			return m, textinput.Blink
		}
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd

	case StateFilling:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.Type {
			case tea.KeyEnter:
				if m.Focused == len(m.Inputs)-1 {
					def := availableCommands[m.Selected]
					payload := map[string]string{}
					for i, f := range def.Fields {
						val := strings.TrimSpace(m.Inputs[i].Value())
						if f.Required && val == "" {
							m.Err = fmt.Errorf("%s is required", f.Name)
							return m, nil
						}
						payload[f.Name] = val
					}
					return m, m.sendCmd(payload)
				}
				m.nextInput()
			case tea.KeyTab, tea.KeyDown:
				m.nextInput()
			case tea.KeyShiftTab, tea.KeyUp:
				m.prevInput()
			}
		}
		cmds := make([]tea.Cmd, len(m.Inputs))
		for i := range m.Inputs {
			m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *CommandFormModel) nextInput() {
	m.Inputs[m.Focused].Blur()
	m.Focused = (m.Focused + 1) % len(m.Inputs)
	m.Inputs[m.Focused].Focus()
}

func (m *CommandFormModel) prevInput() {
	m.Inputs[m.Focused].Blur()
	m.Focused--
	if m.Focused < 0 {
		m.Focused = len(m.Inputs) - 1
	}
	m.Inputs[m.Focused].Focus()
}

// sendCmd dispatches with a fresh uuid command id. The relay queues blindly;
// re-sending the same form twice queues the command twice.
func (m CommandFormModel) sendCmd(payload map[string]string) tea.Cmd {
	def := availableCommands[m.Selected]
	return func() tea.Msg {
		cmd := CommandPayload{ID: uuid.NewString(), Type: def.Type}
		if len(payload) > 0 {
			b, err := json.Marshal(payload)
			if err != nil {
				return errMsg(err)
			}
			cmd.Payload = b
		}
		if err := m.API.SendCommand(m.AgentID, cmd); err != nil {
			return errMsg(err)
		}
		return CommandSentMsg{CommandID: cmd.ID}
	}
}

func (m CommandFormModel) View() string {
	var b strings.Builder
	switch m.State {
	case StateSelecting:
		b.WriteString(m.List.View())
		b.WriteString("\n" + blurredStyle.Render("enter to select, esc to cancel"))
	case StateFilling:
		b.WriteString(titleStyle.Render("Command: "+availableCommands[m.Selected].Type) + "\n\n")
		for i := range m.Inputs {
			b.WriteString(m.Inputs[i].View() + "\n")
		}
		b.WriteString("\n" + blurredStyle.Render("enter on last field to send, esc to cancel"))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
