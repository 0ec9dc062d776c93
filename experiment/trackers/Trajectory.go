package trackers

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// CellSize is the width in pixels of a cell in a trajectory image
const CellSize = 16

var (
	wallShade  = color.RGBA{40, 40, 48, 255}
	floorShade = color.RGBA{235, 235, 228, 255}
	pathShade  = color.RGBA{52, 120, 220, 255}
	lostShade  = color.RGBA{230, 150, 40, 255}
	startShade = color.RGBA{60, 170, 80, 255}
	goalShade  = color.RGBA{210, 60, 60, 255}
)

// Trajectory keeps the path taken by the agent in the most recently
// finished episode and saves it as a PNG image of the maze. Paths of
// won episodes are drawn in blue, others in orange.
type Trajectory struct {
	view     environment.View
	filename string

	grid *grid.Grid
	path []grid.Position
	won  bool
}

// NewTrajectory returns a new Trajectory tracking the agent of view
func NewTrajectory(view environment.View, filename string) *Trajectory {
	return &Trajectory{view: view, filename: filename}
}

// Track copies the agent's path when the episode ends
func (t *Trajectory) Track(step ts.TimeStep) {
	if !step.Last() {
		return
	}
	t.grid = t.view.Grid()
	t.path = append(t.path[:0], t.view.Agent().Path...)
	t.won = step.Won()
}

// Path returns the path of the most recently finished episode
func (t *Trajectory) Path() []grid.Position {
	return append([]grid.Position(nil), t.path...)
}

// Save draws the maze and the tracked path
func (t *Trajectory) Save() error {
	if t.grid == nil {
		return fmt.Errorf("save: no episode has finished")
	}

	rows, cols := t.grid.Dims()
	dc := gg.NewContext(cols*CellSize, rows*CellSize)
	dc.SetColor(floorShade)
	dc.Clear()

	dc.SetColor(wallShade)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !t.grid.IsOpen(grid.Position{Row: r, Col: c}) {
				dc.DrawRectangle(float64(c*CellSize), float64(r*CellSize),
					CellSize, CellSize)
			}
		}
	}
	dc.Fill()

	t.marker(dc, t.grid.Start(), startShade)
	t.marker(dc, t.grid.Goal(), goalShade)

	// Draw path
	dc.ClearPath()
	for i, p := range t.path {
		x, y := centre(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	if t.won {
		dc.SetColor(pathShade)
	} else {
		dc.SetColor(lostShade)
	}
	dc.SetLineWidth(CellSize / 4)
	dc.Stroke()

	if err := dc.SavePNG(t.filename); err != nil {
		return fmt.Errorf("save: could not save trajectory: %v", err)
	}
	return nil
}

func (t *Trajectory) marker(dc *gg.Context, p grid.Position, c color.Color) {
	x, y := centre(p)
	dc.DrawCircle(x, y, CellSize/3)
	dc.SetColor(c)
	dc.Fill()
}

// centre returns the pixel coordinates of the centre of cell p
func centre(p grid.Position) (float64, float64) {
	return float64(p.Col*CellSize) + CellSize/2,
		float64(p.Row*CellSize) + CellSize/2
}
