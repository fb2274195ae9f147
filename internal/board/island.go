package board

// Island is a maximal 8-connected set of land tiles.
type Island struct {
	ID     int
	Tiles  []*Tile // in discovery order
	Height float64 // mean of member tile heights
	Status Status
}

func newIsland(id int, tiles []*Tile) *Island {
	sum := 0
	for _, t := range tiles {
		sum += t.Height
	}
	return &Island{
		ID:     id,
		Tiles:  tiles,
		Height: float64(sum) / float64(len(tiles)),
	}
}

// Size returns the number of tiles in the island.
func (i *Island) Size() int { return len(i.Tiles) }

// setStatus changes the island's status unless it has already been guessed.
func (i *Island) setStatus(s Status) {
	if i.Status == Guessed {
		return
	}
	i.Status = s
}
