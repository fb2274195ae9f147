package board

// Status is the selection state of an island. Water tiles always report
// Unselected.
type Status uint8

const (
	Unselected Status = iota
	Selected
	Guessed
)

func (s Status) String() string {
	switch s {
	case Unselected:
		return "unselected"
	case Selected:
		return "selected"
	case Guessed:
		return "guessed"
	}
	return "unknown"
}

// NoIsland is the island index carried by water tiles.
const NoIsland = -1

// Tile is one grid cell. It holds no selection state of its own; status is
// resolved through the owning island.
type Tile struct {
	X, Y   int
	Height int
	Island int // index into Board.Islands, or NoIsland
}

// IsWater reports whether the tile has zero height.
func (t Tile) IsWater() bool { return t.Height == 0 }
