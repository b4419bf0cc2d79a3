// Command nes-tui is a text-mode front end for the emulator core, driving
// the same Machine.Step/StepFrame contract as cmd/gones through bubbletea's
// event loop instead of SDL2.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retrobus/nescore/pkg/cartridge"
	"github.com/retrobus/nescore/pkg/cpu"
	"github.com/retrobus/nescore/pkg/input"
	"github.com/retrobus/nescore/pkg/logger"
	"github.com/retrobus/nescore/pkg/nes"
)

const frameInterval = time.Second / 60

type frameTickMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// keyButton maps a terminal key to the controller-1 button it drives. The
// terminal has no key-release events, so a key held down just repeats its
// keypress messages; a button is considered pressed only for the frame in
// which a matching key message arrives, then released before the next step.
var keyButton = map[string]input.Button{
	"z":     input.ButtonA,
	"x":     input.ButtonB,
	"a":     input.ButtonSelect,
	"s":     input.ButtonStart,
	"up":    input.ButtonUp,
	"down":  input.ButtonDown,
	"left":  input.ButtonLeft,
	"right": input.ButtonRight,
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	flagOn     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	flagOff    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type model struct {
	machine  *nes.NES
	romName  string
	pressed  [8]bool
	quitting bool
	frames   uint64
}

func newModel(machine *nes.NES, romName string) model {
	return model{machine: machine, romName: romName}
}

func (m model) Init() tea.Cmd {
	return frameTick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		}
		if btn, ok := keyButton[msg.String()]; ok {
			m.pressed[btn] = true
		}
		return m, nil

	case frameTickMsg:
		input := m.machine.GetInput()
		for btn, down := range m.pressed {
			input.SetButton(0, intToButton(btn), down)
		}
		m.machine.StepFrame()
		m.frames++
		m.pressed = [8]bool{}
		return m, frameTick()
	}
	return m, nil
}

func intToButton(i int) input.Button { return input.Button(i) }

func (m model) View() string {
	if m.quitting {
		return "nes-tui stopped.\n"
	}

	screen := renderFramebuffer(m.machine)
	panel := renderPanel(m)

	return lipgloss.JoinHorizontal(lipgloss.Top, screen, panel)
}

// renderFramebuffer draws the 256x240 framebuffer as a grid of half-block
// glyphs, each glyph packing two vertical pixels via foreground/background
// color so a terminal cell carries roughly square pixel aspect.
func renderFramebuffer(machine *nes.NES) string {
	fb := machine.GetDisplayFramebufferRaw()
	const width, height = 256, 240

	var b strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x += 2 {
			top := fb[y*width+x]
			var bottom uint32
			if y+1 < height {
				bottom = fb[(y+1)*width+x]
			} else {
				bottom = top
			}
			fg := lipgloss.Color(fmt.Sprintf("#%06X", top&0xFFFFFF))
			bg := lipgloss.Color(fmt.Sprintf("#%06X", bottom&0xFFFFFF))
			b.WriteString(lipgloss.NewStyle().Foreground(fg).Background(bg).Render("▀"))
		}
		b.WriteByte('\n')
	}
	return panelStyle.Render(b.String())
}

func renderPanel(m model) string {
	c := m.machine.CPU
	p := m.machine.PPU

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.romName) + "\n\n")
	fmt.Fprintf(&b, "frame   %d\n", m.frames)
	fmt.Fprintf(&b, "cycles  %d\n\n", m.machine.CPU.Cycles)
	fmt.Fprintf(&b, "A=%02X X=%02X Y=%02X SP=%02X\n", c.A, c.X, c.Y, c.SP)
	fmt.Fprintf(&b, "PC=%04X\n\n", c.PC)
	b.WriteString(renderFlags(c) + "\n\n")
	fmt.Fprintf(&b, "scanline %d\n", p.Scanline)
	fmt.Fprintf(&b, "ppu cyc  %d\n", p.Cycle)
	fmt.Fprintf(&b, "PPUCTRL  %02X\n", p.PPUCTRL)
	fmt.Fprintf(&b, "PPUMASK  %02X\n", p.PPUMASK)
	fmt.Fprintf(&b, "PPUSTAT  %02X\n\n", p.PPUSTATUS)
	b.WriteString("z/x a/s   A/B Select/Start\n")
	b.WriteString("arrows    d-pad\n")
	b.WriteString("q/esc     quit\n")

	return panelStyle.Width(28).Render(b.String())
}

func renderFlags(c *cpu.CPU) string {
	names := []struct {
		label string
		bit   uint8
	}{
		{"N", cpu.FlagNegative}, {"V", cpu.FlagOverflow}, {"-", cpu.FlagUnused},
		{"B", cpu.FlagBreak}, {"D", cpu.FlagDecimal}, {"I", cpu.FlagInterrupt},
		{"Z", cpu.FlagZero}, {"C", cpu.FlagCarry},
	}
	parts := make([]string, len(names))
	for i, n := range names {
		if c.GetFlag(n.bit) {
			parts[i] = flagOn.Render(n.label)
		} else {
			parts[i] = flagOff.Render(n.label)
		}
	}
	return strings.Join(parts, " ")
}

func main() {
	logLevel := flag.String("log-level", "off", "Log level (off, error, warn, info, debug, trace)")
	logFile := flag.String("log-file", "", "Log file path (empty for stdout)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <rom_file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := logger.GetLogLevelFromString(*logLevel)
	if err := logger.Initialize(level, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	romFile := flag.Arg(0)
	file, err := os.Open(romFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open ROM file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	cart, err := cartridge.LoadFromReader(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load ROM: %v\n", err)
		os.Exit(1)
	}

	machine := nes.NewNES()
	machine.LoadCartridge(cart)
	machine.Reset()

	defer func() {
		if r := recover(); r != nil {
			if faultErr, ok := r.(error); ok {
				logger.LogError("unrecoverable CPU fault: %v", faultErr)
				fmt.Fprintf(os.Stderr, "unrecoverable CPU fault: %v\n", faultErr)
				os.Exit(-1)
			}
			panic(r)
		}
	}()

	p := tea.NewProgram(newModel(machine, romFile), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "nes-tui: %v\n", err)
		os.Exit(1)
	}
}
