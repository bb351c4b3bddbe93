// This file is part of vt100sim.
//
// vt100sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vt100sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vt100sim.  If not, see <https://www.gnu.org/licenses/>.

// Command vt100monitor runs a command script against a headless VT100
// simulation the same way vt100sim does, but instead of printing watch
// changes to a scrolling log it shows a live status panel: PC and cycle
// count, interrupt lines, the LBA7 level, the SB1/SB2 switch bytes, and
// coverage fill.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retrovt/vt100sim/hardware"
	"github.com/retrovt/vt100sim/loaders"
	"github.com/retrovt/vt100sim/script"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "vt100monitor:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flgs := flag.NewFlagSet("vt100monitor", flag.ExitOnError)
	rom := flgs.String("rom", "vt100.rom", "path to the firmware ROM image")
	nvrPath := flgs.String("nvr", "er1400.bin", "path to the ER1400 NVR image (absent means erased)")
	scriptPath := flgs.String("script", "", "path to a command script (required)")
	if err := flgs.Parse(args); err != nil {
		return err
	}
	if *scriptPath == "" {
		return fmt.Errorf("-script is required")
	}

	m := hardware.NewMachine()
	if err := loaders.LoadROM(m.Memory, *rom); err != nil {
		return err
	}
	if err := loaders.LoadNVR(m.Ports.NVR, *nvrPath); err != nil {
		return err
	}

	driver := script.NewDriver(m, discard{})

	lines, err := readLines(*scriptPath)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- driver.Run(lines) }()

	mdl := model{machine: m, done: done}
	_, err = tea.NewProgram(mdl).Run()
	return err
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines, nil
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type finishedMsg struct{ err error }

// model polls the running machine's exported state on a timer rather than
// synchronizing with the driver goroutine: a status display that's one
// tick stale is fine, and the driver never mutates anything this model
// writes to.
type model struct {
	machine *hardware.Machine
	done    chan error

	finished bool
	err      error
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForDone(m.done))
}

func waitForDone(done chan error) tea.Cmd {
	return func() tea.Msg {
		return finishedMsg{err: <-done}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		if m.finished {
			return m, nil
		}
		return m, tick()
	case finishedMsg:
		m.finished = true
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func led(on bool, name string) string {
	if on {
		return onStyle.Render(name)
	}
	return offStyle.Render(name)
}

func (m model) View() string {
	ports := m.machine.Ports

	lines := ports.Lines
	interrupts := fmt.Sprintf("%s %s %s", led(lines.VBI, "VBI"), led(lines.RECI, "RECI"), led(lines.KBDI, "KBDI"))

	sb1, _ := m.machine.Memory.Peek(0x21a6)
	sb2, _ := m.machine.Memory.Peek(0x21a7)
	switches := fmt.Sprintf("SB1 %08b  SB2 %08b", sb1, sb2)

	status := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("vt100sim monitor"),
		"",
		labelStyle.Render("PC: ")+fmt.Sprintf("%04x", m.machine.CPU.PC),
		labelStyle.Render("Cycles: ")+fmt.Sprintf("%d", m.machine.CPU.Cycles),
		labelStyle.Render("Interrupts: ")+interrupts,
		labelStyle.Render("LBA7: ")+led(ports.LBA7, "LBA7"),
		labelStyle.Render("Switches: ")+switches,
		labelStyle.Render("Coverage fill: ")+fmt.Sprintf("%.1f%%", m.machine.Coverage.Fill()*100),
	)

	footer := labelStyle.Render("q to quit")
	if m.finished {
		if m.err != nil {
			footer = fmt.Sprintf("run finished: %s", m.err)
		} else {
			footer = "run finished"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(status), footer)
}
