package trackers

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// Window is the number of episodes averaged over by rolling statistics
const Window = 20

// Chart tracks per-episode returns, lengths and outcomes and saves them
// as an HTML page of line charts
type Chart struct {
	episodes
	title    string
	filename string
}

// NewChart returns a new Chart which saves its page to filename
func NewChart(title, filename string) *Chart {
	return &Chart{episodes: newEpisodes(), title: title, filename: filename}
}

// Track tracks the reward and outcome of a timestep
func (c *Chart) Track(step ts.TimeStep) {
	c.track(step)
}

// Save renders the tracked data to an HTML page
func (c *Chart) Save() error {
	xAxis := make([]string, len(c.returns))
	for i := range xAxis {
		xAxis[i] = fmt.Sprintf("%d", i+1)
	}

	page := components.NewPage()
	page.AddCharts(
		c.line(c.title+": return", xAxis, map[string][]float64{
			"Return":       c.returns,
			"Rolling mean": rollingMean(c.returns, Window),
		}),
		c.line(c.title+": episode length", xAxis, map[string][]float64{
			"Ticks": c.lengths,
		}),
		c.line(c.title+": win rate", xAxis, map[string][]float64{
			"Rolling win rate": rollingMean(c.wins, Window),
		}),
	)

	f, err := os.Create(c.filename)
	if err != nil {
		return fmt.Errorf("save: could not create chart file: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("save: could not render chart: %v", err)
	}
	return nil
}

// line returns a line chart with one series per entry of series
func (c *Chart) line(title string, xAxis []string,
	series map[string][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)

	line.SetXAxis(xAxis)
	for _, name := range sortedKeys(series) {
		items := make([]opts.LineData, 0, len(series[name]))
		for _, v := range series[name] {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(name, items)
	}
	return line
}
