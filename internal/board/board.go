package board

// Board is the single source of truth for square occupancy.
//
// It is not safe for concurrent use; the session mutates it from one
// goroutine between lifecycle ticks.
type Board struct {
	squares [SquareCount]Record
	castle  [2]CastleRights
	turn    Side
}

// New returns an empty board with White to move and no castling rights.
func New() *Board {
	b := &Board{turn: White}
	for i := range b.squares {
		b.squares[i] = Empty
	}
	return b
}

// NewFromLayout returns a board loaded with l.
func NewFromLayout(l *Layout) *Board {
	b := New()
	b.Load(l)
	return b
}

// Load replaces the whole board with l. Visual handles are dropped; the caller
// attaches new ones with SetVisual.
func (b *Board) Load(l *Layout) {
	for sq, rec := range l.Squares {
		rec.Visual = NoHandle
		b.squares[sq] = rec
	}
	b.castle = l.Castle
	b.turn = l.Turn
}

// Get returns the record at sq. Empty squares return the Empty record.
func (b *Board) Get(sq Square) Record {
	mustValid(sq)
	return b.squares[sq]
}

// IsSameSide reports whether both squares hold pieces of the same side.
// Two empty squares are never the same side.
func (b *Board) IsSameSide(a, c Square) bool {
	mustValid(a)
	mustValid(c)
	sa, sc := b.squares[a].Side, b.squares[c].Side
	return sa != NoSide && sa == sc
}

// Remove clears sq and returns the visual that was on it.
// The caller owns detaching that visual.
func (b *Board) Remove(sq Square) Handle {
	mustValid(sq)
	removed := b.squares[sq].Visual
	b.squares[sq] = Empty
	return removed
}

// Move overwrites to with the record on from, clears from, and returns the
// visual that was on to (the captured piece), if any.
//
// No legality check is made. Castling rights are cleared when a king leaves
// its home square or a rook leaves or is taken on its corner.
func (b *Board) Move(from, to Square) Handle {
	mustValid(from)
	mustValid(to)
	if from == to {
		return NoHandle
	}

	mover := b.squares[from]
	b.clearCastling(from, mover)
	b.clearCastling(to, b.squares[to])

	captured := b.squares[to].Visual
	b.squares[to] = mover
	b.squares[from] = Empty
	return captured
}

// clearCastling drops the rights affected by rec leaving or losing sq.
func (b *Board) clearCastling(sq Square, rec Record) {
	switch rec.Kind {
	case King:
		if homeKing[rec.Side] == sq {
			b.castle[rec.Side] = NoCastling
		}
	case Rook:
		if c, ok := rookCorners[sq]; ok && c.side == rec.Side {
			b.castle[rec.Side] = b.castle[rec.Side].Without(c.bit)
		}
	}
}

// SetVisual binds a visual handle to the piece on sq.
func (b *Board) SetVisual(sq Square, h Handle) {
	mustValid(sq)
	b.squares[sq].Visual = h
}

// FindVisual returns the square holding h, or NoSquare.
func (b *Board) FindVisual(h Handle) Square {
	if h == NoHandle {
		return NoSquare
	}
	for sq := range b.squares {
		if b.squares[sq].Visual == h {
			return Square(sq)
		}
	}
	return NoSquare
}

// Each calls fn for every square in square order.
func (b *Board) Each(fn func(sq Square, rec Record)) {
	for sq := range b.squares {
		fn(Square(sq), b.squares[sq])
	}
}

// Occupied returns the number of occupied squares.
func (b *Board) Occupied() int {
	n := 0
	for _, rec := range b.squares {
		if !rec.IsEmpty() {
			n++
		}
	}
	return n
}

// Turn returns the side to move. It is tracked, never enforced.
func (b *Board) Turn() Side {
	return b.turn
}

// SetTurn records the side to move.
func (b *Board) SetTurn(s Side) {
	if s < NoSide {
		b.turn = s
	}
}

// CastleRights returns the remaining castling rights of s.
func (b *Board) CastleRights(s Side) CastleRights {
	if s >= NoSide {
		return NoCastling
	}
	return b.castle[s]
}

// FEN returns the position string of the current arrangement.
func (b *Board) FEN() string {
	return formatPosition(&b.squares, b.turn, b.castle)
}
