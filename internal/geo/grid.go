package geo

// Tile places one state on the map grid.
type Tile struct {
	Code string
	Name string
	Row  int
	Col  int
}

// GridRows and GridCols are the dimensions of the tile map.
const (
	GridRows = 8
	GridCols = 11
)

var gridCodes = [GridRows][]struct {
	code string
	col  int
}{
	{{"AK", 0}, {"ME", 10}},
	{{"WI", 5}, {"VT", 9}, {"NH", 10}},
	{{"WA", 0}, {"ID", 1}, {"MT", 2}, {"ND", 3}, {"MN", 4}, {"IL", 5}, {"MI", 6}, {"NY", 8}, {"MA", 9}},
	{{"OR", 0}, {"NV", 1}, {"WY", 2}, {"SD", 3}, {"IA", 4}, {"IN", 5}, {"OH", 6}, {"PA", 7}, {"NJ", 8}, {"CT", 9}, {"RI", 10}},
	{{"CA", 0}, {"UT", 1}, {"CO", 2}, {"NE", 3}, {"MO", 4}, {"KY", 5}, {"WV", 6}, {"VA", 7}, {"MD", 8}, {"DE", 9}},
	{{"AZ", 1}, {"NM", 2}, {"KS", 3}, {"AR", 4}, {"TN", 5}, {"NC", 6}, {"SC", 7}, {"DC", 8}},
	{{"OK", 3}, {"LA", 4}, {"MS", 5}, {"AL", 6}, {"GA", 7}},
	{{"HI", 0}, {"TX", 3}, {"FL", 8}},
}

// Grid is the tile layout of the 50 states and DC, in row-major order.
var Grid = func() []Tile {
	var tiles []Tile
	for row, cells := range gridCodes {
		for _, c := range cells {
			tiles = append(tiles, Tile{Code: c.code, Name: stateNames[c.code], Row: row, Col: c.col})
		}
	}
	return tiles
}()

// TileAt returns the index into Grid of the tile at row, col.
func TileAt(row, col int) (int, bool) {
	for i, t := range Grid {
		if t.Row == row && t.Col == col {
			return i, true
		}
	}
	return -1, false
}

// Neighbor returns the index of the nearest tile from Grid[from] moving by
// (dRow, dCol). Empty cells are skipped; ok is false at the edge.
func Neighbor(from, dRow, dCol int) (int, bool) {
	if from < 0 || from >= len(Grid) {
		return -1, false
	}
	t := Grid[from]
	if dRow != 0 {
		best, bestDist := -1, 0
		for r := t.Row + dRow; r >= 0 && r < GridRows; r += dRow {
			for i, o := range Grid {
				if o.Row != r {
					continue
				}
				d := abs(o.Col - t.Col)
				if best < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}
			if best >= 0 {
				return best, true
			}
		}
		return -1, false
	}
	if dCol == 0 {
		return -1, false
	}
	for c := t.Col + dCol; c >= 0 && c < GridCols; c += dCol {
		if i, ok := TileAt(t.Row, c); ok {
			return i, true
		}
	}
	return -1, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
