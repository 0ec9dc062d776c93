package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/agent/linear/approx"
	"github.com/samuelfneumann/mazelearn/agent/tabular/hybrid"
	"github.com/samuelfneumann/mazelearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/mazelearn/environment/generator"
	"github.com/samuelfneumann/mazelearn/environment/maze"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/experiment"
	"github.com/samuelfneumann/mazelearn/experiment/trackers"
	"github.com/samuelfneumann/mazelearn/expreplay"
	"github.com/samuelfneumann/mazelearn/utils/progressbar"
)

// options holds the flags of the train and config commands
type options struct {
	configFile string

	agent    string
	mode     string
	rows     int
	cols     int
	maze     string
	episodes int
	steps    uint

	learningRate float64
	discount     float64
	epsStart     float64
	epsEnd       float64
	horizon      int
	autoTune     bool

	plan      time.Duration
	planDepth int
	replay    string

	seed    uint64
	out     string
	eval    int
	verbose bool
}

func (o *options) addFlags(cmd *cobra.Command, d defaults) {
	f := cmd.Flags()
	f.StringVar(&o.configFile, "config", "", "JSON experiment "+
		"configuration, overrides all other experiment flags")
	f.StringVar(&o.agent, "agent", d.Agent, "agent: tabular, hybrid "+
		"or linear")
	f.StringVar(&o.mode, "mode", d.Mode, "game mode: static, moving, "+
		"competitive, fog, survival or procedural")
	f.IntVar(&o.rows, "rows", d.Rows, "maze rows (odd)")
	f.IntVar(&o.cols, "cols", d.Cols, "maze columns (odd)")
	f.StringVar(&o.maze, "algorithm", string(generator.WilsonAlgorithm),
		"maze generation algorithm: Wilson, Backtracking, AldousBroder "+
			"or BinaryTree")
	f.IntVar(&o.episodes, "episodes", d.Episodes, "training episodes")
	f.UintVar(&o.steps, "steps", 0, "maximum training timesteps, 0 for "+
		"no limit")
	f.Float64Var(&o.learningRate, "lr", 0.1, "learning rate, 0 for the "+
		"default of the linear agent")
	f.Float64Var(&o.discount, "discount", 0.95, "discount factor")
	f.Float64Var(&o.epsStart, "eps-start", -1, "initial exploration "+
		"rate, negative for the mode default")
	f.Float64Var(&o.epsEnd, "eps-end", 0.01, "final exploration rate")
	f.IntVar(&o.horizon, "horizon", 0, "episodes over which the "+
		"exploration rate decays, 0 for the mode default decay")
	f.BoolVar(&o.autoTune, "autotune", false, "adapt the exploration "+
		"rate to the recent win rate")
	f.DurationVar(&o.plan, "plan", 0, "lookahead planning budget per "+
		"action, 0 to disable")
	f.IntVar(&o.planDepth, "plan-depth", 0, "maximum lookahead depth, 0 "+
		"for the default")
	f.StringVar(&o.replay, "replay", string(expreplay.Uniform), "replay "+
		"sampling of the linear agent: Uniform or Fifo")
	f.Uint64Var(&o.seed, "seed", d.Seed, "random seed")
}

// experimentConfig returns the experiment configuration described by
// the flags
func (o *options) experimentConfig() (experiment.Config, error) {
	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return experiment.Config{}, fmt.Errorf("could not read "+
				"config: %v", err)
		}
		var c experiment.Config
		if err := json.Unmarshal(data, &c); err != nil {
			return experiment.Config{}, fmt.Errorf("could not decode "+
				"config: %v", err)
		}
		return c, c.Validate()
	}

	m, err := mode.Parse(o.mode)
	if err != nil {
		return experiment.Config{}, err
	}

	var exploration *agent.Exploration
	if o.epsStart >= 0 || o.autoTune {
		start := o.epsStart
		if start < 0 {
			start = 1
		}
		exploration = &agent.Exploration{
			Start:    start,
			End:      o.epsEnd,
			Horizon:  o.horizon,
			AutoTune: o.autoTune,
		}
	}

	var planning *agent.Planning
	if o.plan > 0 {
		planning = &agent.Planning{Budget: o.plan, MaxDepth: o.planDepth}
	}

	tabular := qlearning.Config{
		LearningRate: o.learningRate,
		Discount:     o.discount,
		Exploration:  exploration,
		Planning:     planning,
	}

	var agentConf agent.Config
	switch o.agent {
	case "tabular":
		agentConf = tabular
	case "hybrid":
		agentConf = hybrid.Config{Config: tabular}
	case "linear":
		agentConf = approx.Config{
			LearningRate: o.learningRate,
			Discount:     o.discount,
			SampleMethod: expreplay.SelectorType(o.replay),
			Exploration:  exploration,
			Planning:     planning,
		}
	default:
		return experiment.Config{}, fmt.Errorf("unknown agent %q", o.agent)
	}

	c := experiment.Config{
		Type:        experiment.OnlineExp,
		MaxSteps:    o.steps,
		MaxEpisodes: o.episodes,
		EnvConf: maze.Config{
			Mode:      m,
			Rows:      o.rows,
			Cols:      o.cols,
			Algorithm: generator.Algorithm(o.maze),
		},
		AgentConf: agent.NewTypedConfig(agentConf),
	}
	return c, c.Validate()
}

func configCommand(d defaults) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the experiment configuration described by the flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.experimentConfig()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(c, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	o.addFlags(cmd, d)
	return cmd
}

func trainCommand(d defaults) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent and save its training curves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return train(cmd.OutOrStdout(), &o)
		},
	}
	o.addFlags(cmd, d)
	cmd.Flags().StringVar(&o.out, "out", d.Out, "directory to save run "+
		"data to")
	cmd.Flags().IntVar(&o.eval, "eval", 20, "greedy evaluation episodes "+
		"after training")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "log "+
		"training progress to stderr")
	return cmd
}

// train runs the experiment described by o, saves its tracked data and
// prints a summary to w
func train(w io.Writer, o *options) error {
	c, err := o.experimentConfig()
	if err != nil {
		return err
	}

	var logger *log.Logger
	if o.verbose {
		logger = log.New(os.Stderr, "mazelearn: ", log.LstdFlags)
	}

	exp, err := c.CreateExp(o.seed, logger)
	if err != nil {
		return err
	}

	dir := filepath.Join(o.out, exp.ID().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create run directory: %v", err)
	}
	title := fmt.Sprintf("%v on %v", c.AgentConf.Type, c.EnvConf.Mode)
	exp.Register(trackers.NewReturn(filepath.Join(dir, "return.bin")))
	exp.Register(trackers.NewEpisodeLength(filepath.Join(dir,
		"length.bin")))
	exp.Register(trackers.NewChart(title, filepath.Join(dir,
		"training.html")))
	exp.Register(trackers.NewCurve(title, filepath.Join(dir,
		"learning_curve.png")))
	exp.Register(trackers.NewTrajectory(exp.Environment, filepath.Join(dir,
		"trajectory.png")))

	if err := run(exp, c.MaxEpisodes, w); err != nil {
		return err
	}
	if err := exp.Save(); err != nil {
		return err
	}

	stats := exp.Stats()
	fmt.Fprintln(w, aurora.Bold("Training"))
	summarize(w, stats)

	if o.eval > 0 {
		exp.Agent.Eval()
		eval := experiment.NewOnline(exp.Environment, exp.Agent, 0, o.eval)
		if err := eval.Run(); err != nil {
			return err
		}
		after := exp.Stats()
		wins := after.Wins - stats.Wins
		fmt.Fprintf(w, "%v %d/%d greedy episodes won\n",
			aurora.Bold("Evaluation"), wins, o.eval)
	}

	fmt.Fprintf(w, "Run data saved to %v\n", aurora.Cyan(dir))
	return nil
}

// run runs exp, displaying a progress bar over episodes when the
// episode count is known
func run(exp *experiment.Online, episodes int, w io.Writer) error {
	if episodes <= 0 {
		return exp.Run()
	}

	bar := progressbar.NewManualProgressBar(w, 40, episodes)
	for done := exp.Done(); !done; {
		var err error
		if done, err = exp.RunEpisode(); err != nil {
			return err
		}
		bar.Set(exp.Episodes())
		bar.Display()
	}
	fmt.Fprintln(w)
	return nil
}

// summarize prints a coloured summary of s to w
func summarize(w io.Writer, s agent.Snapshot) {
	rate := aurora.Green(fmt.Sprintf("%.2f", s.WinRate))
	if s.WinRate < 0.5 {
		rate = aurora.Red(fmt.Sprintf("%.2f", s.WinRate))
	}
	fmt.Fprintf(w, "  episodes:  %d (%d won, win rate %v)\n", s.Episodes,
		s.Wins, rate)
	fmt.Fprintf(w, "  moves:     %.1f ± %.1f (min %.0f, max %.0f)\n",
		s.MeanMoves, s.StdMoves, s.MinMoves, s.MaxMoves)
	fmt.Fprintf(w, "  return:    %.2f\n", s.MeanReturn)
	fmt.Fprintf(w, "  ε:         %.3f   γ: %.2f\n", s.Epsilon, s.Gamma)
	fmt.Fprintf(w, "  strategy:  %v\n", aurora.Blue(s.Strategy))
	if s.TableSize > 0 {
		fmt.Fprintf(w, "  table:     %d states\n", s.TableSize)
	}
	if s.BufferSize > 0 {
		fmt.Fprintf(w, "  buffer:    %d experiences, loss %.4f\n",
			s.BufferSize, s.Loss)
	}
}
