package board

// Builder accumulates tile values before producing a validated Board.
type Builder struct {
	conv  *Converter
	cells [Size][Size]int
}

// NewBuilder returns an empty builder whose boards share conv.
func NewBuilder(conv *Converter) *Builder {
	if conv == nil {
		conv = NewConverter()
	}
	return &Builder{conv: conv}
}

// Set stores value at row i, column j.
func (bb *Builder) Set(i, j, value int) *Builder {
	bb.cells[i][j] = value
	return bb
}

// Build validates the accumulated cells.
func (bb *Builder) Build() (Board, error) {
	return FromCells(bb.conv, bb.cells)
}
