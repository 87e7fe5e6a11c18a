// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/wbctl/internal/snapshot"
)

// SelectVersions runs the interactive picker and returns the two chosen
// versions in list order, or nil if the user quit.
func SelectVersions(items []*snapshot.Version) []*snapshot.Version {
	p := tea.NewProgram(newPicker(items))
	m, err := p.Run()
	if err != nil {
		return nil
	}
	return m.(picker).selected
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Go     key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Toggle: key.NewBinding(key.WithKeys(" ")),
	Go:     key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

var (
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
)

type picker struct {
	items    []*snapshot.Version
	cursor   int
	selected []*snapshot.Version
}

func newPicker(items []*snapshot.Version) picker {
	return picker{items: items}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Quit):
		m.selected = nil
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Toggle):
		if len(m.items) == 0 {
			break
		}
		m = m.toggle(m.items[m.cursor])
	case key.Matches(km, keys.Go):
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

// toggle adds or removes v from the selection, keeping at most two entries
// and keeping them in list order.
func (m picker) toggle(v *snapshot.Version) picker {
	for i, s := range m.selected {
		if s.ID == v.ID {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			return m
		}
	}
	if len(m.selected) >= 2 {
		return m
	}

	var ordered []*snapshot.Version
	for _, item := range m.items {
		if item.ID == v.ID || contains(m.selected, item) {
			ordered = append(ordered, item)
		}
	}
	m.selected = ordered
	return m
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select two snapshot versions:\n\n")
	for i, v := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = cursorStyle.Render(">")
		}
		mark := " "
		if contains(m.selected, v) {
			mark = selectedStyle.Render("x")
		}
		fmt.Fprintf(&b, "%s [%s] %s %4d %s\n", cursor, mark, v.ID, v.Serial, humanize.Time(v.CreatedAt))
	}
	b.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

func contains(versions []*snapshot.Version, version *snapshot.Version) bool {
	for _, v := range versions {
		if v.ID == version.ID {
			return true
		}
	}
	return false
}
