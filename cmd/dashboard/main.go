package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sysai-relay/cmd/dashboard/ui"
)

func main() {
	p := tea.NewProgram(ui.NewRootModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "dashboard error:", err)
		os.Exit(1)
	}
}
