// internal/puzzle/validate.go
//
// Solution checking. A proposed ordering solves an instance when the tops and
// bottoms of the referenced tiles concatenate to the same string. Orderings
// may repeat tiles and need not use every tile.

package puzzle

import "strings"

// Validate reports whether the proposed tile ordering solves the instance.
// An empty ordering or any unknown tile id fails outright. Validation is
// pure string comparison — it works the same on instances the generator
// intended to be unsolvable.
func (inst *Instance) Validate(order []TileID) bool {
	if inst == nil || len(order) == 0 {
		return false
	}

	byID := make(map[TileID]Tile, len(inst.Tiles))
	for _, tile := range inst.Tiles {
		byID[tile.ID] = tile
	}

	var top, bottom strings.Builder
	for _, id := range order {
		tile, ok := byID[id]
		if !ok {
			return false
		}
		top.WriteString(tile.Top)
		bottom.WriteString(tile.Bottom)
	}
	return top.String() == bottom.String()
}
