package trackers

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// Curve tracks per-episode returns and saves the learning curve as an
// image. The image format is taken from the file extension.
type Curve struct {
	episodes
	title    string
	filename string
}

// NewCurve returns a new Curve which saves its plot to filename
func NewCurve(title, filename string) *Curve {
	return &Curve{episodes: newEpisodes(), title: title, filename: filename}
}

// Track tracks the reward of a timestep
func (c *Curve) Track(step ts.TimeStep) {
	c.track(step)
}

// Save plots the episodic returns and their rolling mean
func (c *Curve) Save() error {
	p := plot.New()
	p.Title.Text = c.title
	p.X.Label.Text = "Episodes"
	p.Y.Label.Text = "Total Reward"

	series := map[string][]float64{
		"Return":       c.returns,
		"Rolling mean": rollingMean(c.returns, Window),
	}
	for i, name := range sortedKeys(series) {
		data := series[name]
		pts := make(plotter.XYs, len(data))
		for j := range data {
			pts[j].X = float64(j + 1)
			pts[j].Y = data[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("save: could not create line plotter: %v", err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, c.filename); err != nil {
		return fmt.Errorf("save: could not save plot: %v", err)
	}
	return nil
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
