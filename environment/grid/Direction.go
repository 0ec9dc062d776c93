package grid

// Direction is one of the four cardinal directions of movement
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all cardinal directions in index order
var Directions = [...]Direction{Up, Down, Left, Right}

var deltas = [...][2]int{
	Up:    {-1, 0},
	Down:  {1, 0},
	Left:  {0, -1},
	Right: {0, 1},
}

// Delta returns the unit (row, column) offset of the direction
func (d Direction) Delta() (int, int) {
	delta := deltas[d]
	return delta[0], delta[1]
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Vertical returns whether the direction moves along rows
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Unknown"
}

// DirectionTo returns the direction of a unit step from p to q, or
// false if q is not adjacent to p.
func DirectionTo(p, q Position) (Direction, bool) {
	diff := q.Sub(p)
	for _, d := range Directions {
		dRow, dCol := d.Delta()
		if diff.Row == dRow && diff.Col == dCol {
			return d, true
		}
	}
	return Up, false
}
