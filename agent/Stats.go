package agent

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Snapshot is a point-in-time summary of an agent's training
type Snapshot struct {
	Episodes int
	Wins     int
	WinRate  float64

	Epsilon float64
	Gamma   float64

	// Statistics of the number of moves taken per episode
	MeanMoves float64
	StdMoves  float64
	MinMoves  float64
	MaxMoves  float64

	MeanReturn float64

	TableSize  int // number of states in a tabular agent's Q table
	BufferSize int // number of experiences held for replay
	Loss       float64
	Strategy   string
}

func (s Snapshot) String() string {
	return fmt.Sprintf("Episodes: %d  |  Win rate: %.2f  |  Moves: %.1f ± %.1f"+
		"  |  ε: %.3f  |  Strategy: %s", s.Episodes, s.WinRate, s.MeanMoves,
		s.StdMoves, s.Epsilon, s.Strategy)
}

// Recorder records the results of episodes
type Recorder struct {
	wins    []bool
	moves   []float64
	returns []float64
}

// Record records the result of a finished episode
func (r *Recorder) Record(won bool, moves int, ret float64) {
	r.wins = append(r.wins, won)
	r.moves = append(r.moves, float64(moves))
	r.returns = append(r.returns, ret)
}

// Episodes returns the number of episodes recorded
func (r *Recorder) Episodes() int {
	return len(r.wins)
}

// RecentWinRate returns the fraction of the last n episodes that were
// won along with the number of episodes the rate was computed over
func (r *Recorder) RecentWinRate(n int) (float64, int) {
	start := len(r.wins) - n
	if start < 0 {
		start = 0
	}
	recent := r.wins[start:]
	if len(recent) == 0 {
		return 0, 0
	}

	wins := 0
	for _, w := range recent {
		if w {
			wins++
		}
	}
	return float64(wins) / float64(len(recent)), len(recent)
}

// Fill fills in the episode statistics of s
func (r *Recorder) Fill(s *Snapshot) {
	s.Episodes = len(r.wins)
	s.Wins = 0
	for _, w := range r.wins {
		if w {
			s.Wins++
		}
	}
	if s.Episodes == 0 {
		return
	}

	s.WinRate = float64(s.Wins) / float64(s.Episodes)
	s.MeanMoves, s.StdMoves = stat.MeanStdDev(r.moves, nil)
	if s.Episodes == 1 {
		s.StdMoves = 0
	}
	s.MinMoves = floats.Min(r.moves)
	s.MaxMoves = floats.Max(r.moves)
	s.MeanReturn = stat.Mean(r.returns, nil)
}

// Reset forgets all recorded episodes
func (r *Recorder) Reset() {
	r.wins = nil
	r.moves = nil
	r.returns = nil
}
