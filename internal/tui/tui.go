// Package tui is the terminal host of the diagram canvas: it owns the
// bubbletea event loop, bridges terminal mouse events onto the scene's
// pointer contract, and renders the scene through a cell-grid surface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"charterm/internal/chartfile"
	"charterm/internal/config"
	"charterm/pkg/geom"
	"charterm/pkg/render"
	"charterm/pkg/scene"
)

// Terminal mice expose a single pointer.
const mousePointerID = 0

// Pixels per terminal cell when exporting a snapshot.
const exportCellSize = 12

const panStep = 4 // cells per keyboard pan keystroke

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cdd6f4")).
			Background(lipgloss.Color("#313244"))
	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a6e3a1")).
			Background(lipgloss.Color("#313244")).
			Bold(true)
)

// Model is the bubbletea model hosting one scene.
type Model struct {
	scene  *scene.Scene
	surf   *CellSurface
	cfg    *config.Config
	logger *log.Logger

	width, height int
	lastMouse     geom.Screen
	mouseDown     bool

	flash    string
	showHelp bool
}

// New builds the host model. doc may be nil for an empty canvas.
func New(doc *chartfile.Document, cfg *config.Config, logger *log.Logger) (*Model, error) {
	surf := NewCellSurface(80, 24)

	palette := scene.DarkPalette()
	if cfg.Theme == "light" {
		palette = scene.LightPalette()
	}

	sc, err := scene.New(surf, scene.WithLogger(logger), scene.WithPalette(palette))
	if err != nil {
		return nil, err
	}
	if doc != nil {
		doc.Sync(sc)
	}
	sc.Draw()

	return &Model{
		scene:  sc,
		surf:   surf,
		cfg:    cfg,
		logger: logger,
		width:  80,
		height: 24,
	}, nil
}

// Run starts the event loop with mouse reporting enabled.
func (m *Model) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rows := msg.Height - 1 // last row is the status bar
		m.surf.Resize(msg.Width, rows)
		m.scene.Draw()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	at := geom.Screen{X: float64(msg.X), Y: float64(msg.Y)}
	m.lastMouse = at

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scene.Wheel(-m.cfg.ZoomStep, at)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scene.Wheel(m.cfg.ZoomStep, at)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.flash = ""
		if msg.Button == tea.MouseButtonLeft {
			m.mouseDown = true
			m.scene.PointerDown(mousePointerID, at)
		}
	case tea.MouseActionMotion:
		m.scene.PointerMove(mousePointerID, at)
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.scene.PointerUp(mousePointerID, at)
		}
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// A flash sticks around until the next keystroke or click.
	m.flash = ""

	center := geom.Screen{X: float64(m.width) / 2, Y: float64(m.height-1) / 2}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "+", "=":
		m.scene.Wheel(-m.cfg.ZoomStep, center)
	case "-":
		m.scene.Wheel(m.cfg.ZoomStep, center)
	case "0":
		m.scene.ResetView()
	case "h", "left":
		m.scene.PanBy(panStep, 0)
	case "l", "right":
		m.scene.PanBy(-panStep, 0)
	case "k", "up":
		m.scene.PanBy(0, panStep)
	case "j", "down":
		m.scene.PanBy(0, -panStep)
	case "y":
		m.yankEntity()
	case "e":
		m.exportPNG()
	}
	return m, nil
}

// yankEntity copies the hovered entity's text to the system clipboard.
func (m *Model) yankEntity() {
	e, ok := m.scene.EntityAt(m.lastMouse)
	if !ok {
		m.flash = "nothing under cursor"
		return
	}
	var b strings.Builder
	b.WriteString(e.Data.Title)
	for _, en := range e.Data.Entries {
		b.WriteString("\n")
		b.WriteString(en.Left)
		if en.Right != "" {
			b.WriteString("  ")
			b.WriteString(en.Right)
		}
	}
	if err := clipboard.WriteAll(b.String()); err != nil {
		m.flash = "clipboard unavailable"
		m.logger.Warn("clipboard write failed", "err", err)
		return
	}
	m.flash = fmt.Sprintf("copied %q", e.Data.Title)
}

// exportPNG snapshots the visible scene to a timestamped PNG.
func (m *Model) exportPNG() {
	raster, err := render.NewRaster(m.surf.cols*exportCellSize, m.surf.rows*exportCellSize)
	if err != nil {
		m.flash = "export failed"
		m.logger.Error("raster surface", "err", err)
		return
	}
	m.scene.Snapshot(raster)

	name := fmt.Sprintf("charterm-%s.png", time.Now().Format("20060102-150405"))
	path, err := m.cfg.ExportPath(name)
	if err != nil {
		m.flash = "export failed"
		m.logger.Error("export dir", "err", err)
		return
	}
	if err := raster.SavePNG(path); err != nil {
		m.flash = "export failed"
		m.logger.Error("save png", "err", err)
		return
	}
	m.flash = "saved " + path
	m.logger.Info("snapshot exported", "path", path)
}

func (m *Model) View() string {
	if m.showHelp {
		return m.helpView()
	}
	return m.surf.View() + "\n" + m.statusBar()
}

func (m *Model) statusBar() string {
	view := m.scene.View()
	left := fmt.Sprintf(" %d%%  cursor: %s  entities: %d  links: %d ",
		int(view.Scale*100+0.5),
		m.scene.Cursor(),
		len(m.scene.EntityIDs()),
		len(m.scene.Connections()),
	)

	right := " ? help  q quit "
	if m.flash != "" {
		right = flashStyle.Render(" " + m.flash + " ")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusStyle.Render(left+strings.Repeat(" ", gap)) + right
}

func (m *Model) helpView() string {
	lines := []string{
		"charterm",
		"========",
		"",
		"Mouse:",
		"  drag inside a box       move it",
		"  drag an edge or corner  resize it",
		"  drag empty space        pan the view",
		"  wheel                   zoom to cursor",
		"",
		"Keys:",
		"  h/j/k/l or arrows  pan",
		"  + / -              zoom in / out",
		"  0                  reset view",
		"  y                  copy hovered box text to clipboard",
		"  e                  export PNG snapshot",
		"  ?                  toggle this help",
		"  q / Ctrl+C         quit",
		"",
		"press any key to close",
	}
	return strings.Join(lines, "\n")
}
