package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/partviz/internal/scene"
)

const rotateStep = 0.1

// Viewer is a Bubble Tea model showing a particles or movie scene.
type Viewer struct {
	title   string
	frames  *Frames
	cam     *Camera
	current int
	showBox bool
	width   int
	height  int
}

// NewViewer prepares wd for the terminal, starting from the widget camera's
// rotation.
func NewViewer(wd *scene.Widget) (*Viewer, error) {
	f, err := FramesOf(wd)
	if err != nil {
		return nil, err
	}
	grid := false
	switch m := wd.Model.(type) {
	case scene.Model:
		grid = m.Options.Grid
	case scene.MovieModel:
		grid = m.Options.Grid
	}
	return &Viewer{
		title:   wd.ID,
		frames:  f,
		cam:     NewCamera(wd.Camera.Rotation),
		showBox: grid,
		width:   80,
		height:  24,
	}, nil
}

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "up", "k":
			v.cam.RotateX(-rotateStep)
		case "down", "j":
			v.cam.RotateX(rotateStep)
		case "left", "h":
			v.cam.RotateY(-rotateStep)
		case "right", "l":
			v.cam.RotateY(rotateStep)
		case "z":
			v.cam.RotateZ(-rotateStep)
		case "x":
			v.cam.RotateZ(rotateStep)
		case "+", "=":
			v.cam.ZoomIn()
		case "-", "_":
			v.cam.ZoomOut()
		case "g":
			v.showBox = !v.showBox
		case "n", " ":
			if v.current < len(v.frames.Frames)-1 {
				v.current++
			}
		case "p":
			if v.current > 0 {
				v.current--
			}
		}
	}
	return v, nil
}

func (v *Viewer) View() string {
	legend := Legend(v.frames.Legend)
	legendWidth := lipgloss.Width(legend) + 2

	cw := max(10, v.width-legendWidth-4)
	ch := max(5, v.height-5)
	c := NewCanvas(cw, ch)
	if len(v.frames.Frames) > 0 {
		Draw(c, v.frames.Frames[v.current], v.frames.Box, v.cam, v.showBox)
	}

	var b strings.Builder
	b.WriteString(Title.Render(v.title))
	if n := len(v.frames.Frames); n > 1 {
		b.WriteString(Subtle.Render(fmt.Sprintf("  frame %d/%d", v.current+1, n)))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(strings.TrimSuffix(c.Render(), "\n")), " ", legend))
	b.WriteString("\n")
	b.WriteString(hints("arrows", "rotate", "+/-", "zoom", "g", "box", "n/p", "frame", "q", "quit"))
	return b.String()
}

// Frame returns the index of the shown frame.
func (v *Viewer) Frame() int { return v.current }

// Camera returns the viewer camera.
func (v *Viewer) Camera() *Camera { return v.cam }

// ShowBox reports whether the bounding box is drawn.
func (v *Viewer) ShowBox() bool { return v.showBox }

// Run shows wd full screen until the user quits.
func Run(wd *scene.Widget) error {
	v, err := NewViewer(wd)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
