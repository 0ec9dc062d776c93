package dynamic

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// SpawnConfig describes how many of each element to place in a maze and
// how they behave
type SpawnConfig struct {
	MovingWalls      int
	RotatingSections int
	Hazards          int
	Food             int
	EnergyCells      int
	Keys             int
	Collectibles     int
	Opponents        int

	WallSpeed     int     // ticks between moving wall moves
	RotationSpeed int     // ticks between quarter turns
	HazardDamage  float64 // health lost per tick on an active hazard
	ItemCooldown  int     // ticks before a picked up item respawns
}

// Spawn places the elements described by c on random cells of g. The
// start, the goal and the cells next to the start are never used.
func Spawn(g *grid.Grid, c SpawnConfig, rng *rand.Rand) *Elements {
	e := NewElements(g, rng)

	reserved := map[grid.Position]bool{g.Start(): true, g.Goal(): true}
	for _, d := range grid.Directions {
		reserved[g.Start().Add(d)] = true
	}

	open := g.OpenCells()
	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	next := func() (grid.Position, bool) {
		for len(open) > 0 {
			p := open[0]
			open = open[1:]
			if !reserved[p] {
				reserved[p] = true
				return p, true
			}
		}
		return grid.Position{}, false
	}

	for i := 0; i < c.MovingWalls; i++ {
		p, ok := next()
		if !ok {
			break
		}
		e.Walls = append(e.Walls, &MovingWall{
			Position:  p,
			Direction: grid.Directions[rng.Intn(len(grid.Directions))],
			Speed:     max(1, c.WallSpeed),
			Length:    1,
		})
	}

	for _, center := range pivots(g, reserved, c.RotatingSections, rng) {
		e.Sections = append(e.Sections, &RotatingSection{
			Center:        center,
			Radius:        1 + rng.Intn(2),
			RotationSpeed: max(1, c.RotationSpeed),
			Angle:         90 * rng.Intn(4),
		})
	}

	for i := 0; i < c.Hazards; i++ {
		p, ok := next()
		if !ok {
			break
		}
		var act Activation
		switch i % 3 {
		case 0:
			act = AlwaysOn{}
		case 1:
			act = Periodic{Period: 6, Window: 3}
		default:
			act = NewProbabilistic(0.3, rand.NewSource(rng.Uint64()))
		}
		e.Hazards = append(e.Hazards, &Hazard{Cell: p, Damage: c.HazardDamage,
			Activation: act})
	}

	items := []struct {
		kind  ItemKind
		n     int
		value float64
	}{
		{Food, c.Food, 20},
		{EnergyCell, c.EnergyCells, 25},
		{Key, c.Keys, 1},
		{Collectible, c.Collectibles, 10},
	}
	for _, it := range items {
		for i := 0; i < it.n; i++ {
			p, ok := next()
			if !ok {
				break
			}
			cooldown := c.ItemCooldown
			if it.kind == Key {
				cooldown = 0
			}
			e.Items = append(e.Items, &Item{Kind: it.kind, Cell: p,
				Value: it.value, Cooldown: cooldown, Available: true})
		}
	}

	for i := 0; i < c.Opponents; i++ {
		p, ok := next()
		if !ok {
			break
		}
		e.Opponents = append(e.Opponents, NewOpponent(p))
	}

	return e
}

// pivots chooses up to n centers for rotating sections. Interior walls
// next to a corridor are preferred so that a section never seals a
// corridor for good.
func pivots(g *grid.Grid, reserved map[grid.Position]bool, n int,
	rng *rand.Rand) []grid.Position {
	if n <= 0 {
		return nil
	}

	var candidates []grid.Position
	for r := 1; r < g.Rows()-1; r++ {
		for c := 1; c < g.Cols()-1; c++ {
			p := grid.Position{Row: r, Col: c}
			if g.IsOpen(p) {
				continue
			}
			for _, d := range grid.Directions {
				if g.IsOpen(p.Add(d)) && !reserved[p.Add(d)] {
					candidates = append(candidates, p)
					break
				}
			}
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
