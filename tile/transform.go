package tile

const (
	halfWidth  = Width >> 1
	halfHeight = Height >> 1
)

// Order in which each group of four rows is read back, and its inverse
var (
	rowOrder   = [halfHeight]int{1, 3, 0, 2}
	rowInverse = [halfHeight]int{2, 0, 3, 1}
)

// Unscramble restores the pixel order of a tile as read from the stream.
// The steps must run in this order.
func (t *Tile) Unscramble() {
	t.rotateBlocks()
	t.swapQuadrants()
	t.swapMiddleColumns()
	t.shuffleRows(rowOrder)
}

// Scramble is the inverse of Unscramble
func (t *Tile) Scramble() {
	t.shuffleRows(rowInverse)
	t.swapMiddleColumns()
	t.swapQuadrants()
	t.unrotateBlocks()
}

// Rotate each 2x2 block 90 degrees counter-clockwise
func (t *Tile) rotateBlocks() {
	p := &t.Pixels
	for x := 0; x < Width; x += 2 {
		for y := 0; y < Height; y += 2 {
			ul, ur := p[x][y], p[x+1][y]
			dl, dr := p[x][y+1], p[x+1][y+1]

			p[x][y], p[x+1][y] = ur, dr
			p[x][y+1], p[x+1][y+1] = ul, dl
		}
	}
}

// Rotate each 2x2 block 90 degrees clockwise
func (t *Tile) unrotateBlocks() {
	p := &t.Pixels
	for x := 0; x < Width; x += 2 {
		for y := 0; y < Height; y += 2 {
			ul, ur := p[x][y], p[x+1][y]
			dl, dr := p[x][y+1], p[x+1][y+1]

			p[x][y], p[x+1][y] = dl, ul
			p[x][y+1], p[x+1][y+1] = dr, ur
		}
	}
}

// Swap the upper-right quadrant with the lower-left one. It is its own
// inverse.
func (t *Tile) swapQuadrants() {
	p := &t.Pixels
	for x := halfWidth; x < Width; x++ {
		for y := 0; y < halfHeight; y++ {
			p[x][y], p[x-halfWidth][y+halfHeight] = p[x-halfWidth][y+halfHeight], p[x][y]
		}
	}
}

// Swap columns 2 and 3 with columns 4 and 5. It is its own inverse.
func (t *Tile) swapMiddleColumns() {
	p := &t.Pixels
	p[2], p[3], p[4], p[5] = p[4], p[5], p[2], p[3]
}

// Reorder the upper and lower four rows of every column so that row i of
// each half takes the value previously in row order[i]
func (t *Tile) shuffleRows(order [halfHeight]int) {
	for x := 0; x < Width; x++ {
		col := &t.Pixels[x]
		for base := 0; base < Height; base += halfHeight {
			var tmp [halfHeight]Color
			copy(tmp[:], col[base:base+halfHeight])
			for i, j := range order {
				col[base+i] = tmp[j]
			}
		}
	}
}
