package visualizer

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// brailleGrid is a canvas of braille cells. Each cell is a 2x4 dot grid,
// giving 2x horizontal and 4x vertical resolution.
type brailleGrid struct {
	cols int
	rows int
	bits [][]uint
}

func newBrailleGrid(cols, rows int) brailleGrid {
	bits := make([][]uint, rows)
	for r := range bits {
		bits[r] = make([]uint, cols)
	}
	return brailleGrid{cols: cols, rows: rows, bits: bits}
}

// dotSize returns the canvas size in dots.
func (g brailleGrid) dotSize() (int, int) {
	return g.cols * 2, g.rows * 4
}

// set lights the dot at dot column dc and dot row dr. Dots outside the grid
// are ignored.
func (g brailleGrid) set(dc, dr int) {
	if dc < 0 || dr < 0 || dc >= g.cols*2 || dr >= g.rows*4 {
		return
	}
	g.bits[dr/4][dc/2] |= 1 << brailleBits[dc%2][dr%4]
}

// cell returns the braille rune for cell (r, c) and whether any dot is lit.
func (g brailleGrid) cell(r, c int) (rune, bool) {
	b := g.bits[r][c]
	return rune(0x2800 + b), b != 0
}
