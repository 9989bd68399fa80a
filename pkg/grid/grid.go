package grid

// GetGridCoords converts a row-major index into (x, y) on a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}
