package scheduler

import (
	"io"
	"log"
	"math"

	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/utils/floatutils"
)

const (
	// DefaultWindow is the default number of episodes the auto-tuner
	// looks back over
	DefaultWindow = 20

	highSuccess = 0.8
	lowSuccess  = 0.1
)

// Result is the outcome of a single episode
type Result struct {
	Won    bool
	Moves  int
	Reward float64
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithAutoTune enables auto-tuning for mode m over a window of the last
// n episodes
func WithAutoTune(m mode.Mode, n int) Option {
	return func(s *Scheduler) {
		if n <= 0 {
			n = DefaultWindow
		}
		s.auto = true
		s.mode = m
		s.windowSize = n
	}
}

// WithLogger sets the logger used to report auto-tuning adjustments
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// Scheduler tracks the exploration rate of an agent. Without
// auto-tuning ε never increases and never falls below its floor.
type Scheduler struct {
	epsilon float64
	min     float64
	decay   float64

	auto       bool
	mode       mode.Mode
	windowSize int
	window     []Result

	logger *log.Logger
}

// New returns a new Scheduler following s
func New(s Schedule, opts ...Option) *Scheduler {
	sched := &Scheduler{
		epsilon: s.Start,
		min:     s.End,
		decay:   floatutils.Clip(s.Decay, MinDecay, MaxDecay),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(sched)
	}
	return sched
}

// ForMode returns a new Scheduler seeded with the defaults of m
func ForMode(m mode.Mode, opts ...Option) *Scheduler {
	return New(ModeDefaults(m).Schedule(), opts...)
}

// Epsilon returns the current exploration rate
func (s *Scheduler) Epsilon() float64 {
	return s.epsilon
}

// SetEpsilon overrides the current exploration rate
func (s *Scheduler) SetEpsilon(e float64) {
	s.epsilon = floatutils.Clip(e, 0, 1)
}

// Min returns the exploration rate floor
func (s *Scheduler) Min() float64 {
	return s.min
}

// Decay returns the current decay rate
func (s *Scheduler) Decay() float64 {
	return s.decay
}

// AutoTuned returns whether auto-tuning is enabled
func (s *Scheduler) AutoTuned() bool {
	return s.auto
}

// Step decays ε once, never going below the floor, and returns the new
// exploration rate
func (s *Scheduler) Step() float64 {
	s.epsilon = math.Max(s.min, s.epsilon*s.decay)
	return s.epsilon
}

// EndEpisode records the result of an episode, then decays ε once.
// With auto-tuning, the window keeps the last n results and is checked
// after every episode once full, and the floor is re-pinned to the mode
// target without exceeding ε.
func (s *Scheduler) EndEpisode(r Result) float64 {
	if s.auto {
		s.window = append(s.window, r)
		if len(s.window) > s.windowSize {
			s.window = s.window[len(s.window)-s.windowSize:]
		}
		if len(s.window) == s.windowSize {
			s.tune()
		}
		s.min = math.Min(ModeDefaults(s.mode).Min, s.epsilon)
	}
	return s.Step()
}

// tune adjusts the decay and ε from the success rate of a full window
func (s *Scheduler) tune() {
	wins := 0
	for _, r := range s.window {
		if r.Won {
			wins++
		}
	}
	success := float64(wins) / float64(len(s.window))

	switch {
	case success >= highSuccess:
		s.decay = floatutils.Clip(s.decay*0.97, MinDecay, MaxDecay)
		s.epsilon *= 0.9

	case success <= lowSuccess:
		s.decay = floatutils.Clip(s.decay+(1-s.decay)/2, MinDecay, MaxDecay)
		s.epsilon = math.Min(1, s.epsilon+margin[s.mode])

	default:
		return
	}

	s.logger.Printf("autotune: success %.2f, ε=%.3f, decay=%.4f", success,
		s.epsilon, s.decay)
}

// SetLogger sets the logger used to report auto-tuning adjustments
func (s *Scheduler) SetLogger(l *log.Logger) {
	s.logger = l
}
