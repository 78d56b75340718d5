package board

// CastleRights is the 2-bit castling field kept per side.
// Bit 0 = kingside available, bit 1 = queenside available.
type CastleRights uint8

const (
	KingSide  CastleRights = 1 << iota // K / k
	QueenSide                          // Q / q
	NoCastling CastleRights = 0
	BothSides  CastleRights = KingSide | QueenSide
)

// Has returns true if every bit of want is still available.
func (cr CastleRights) Has(want CastleRights) bool {
	return cr&want == want && want != NoCastling
}

// Without returns the rights with the given bits cleared.
func (cr CastleRights) Without(bits CastleRights) CastleRights {
	return cr &^ bits
}

// castlingString renders both sides' rights in position-string form.
func castlingString(rights [2]CastleRights) string {
	s := ""
	if rights[White]&KingSide != 0 {
		s += "K"
	}
	if rights[White]&QueenSide != 0 {
		s += "Q"
	}
	if rights[Black]&KingSide != 0 {
		s += "k"
	}
	if rights[Black]&QueenSide != 0 {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// homeKing is the king's starting square per side.
var homeKing = [2]Square{E1, E8}

// rookCorners maps the corner squares to the right they guard.
var rookCorners = map[Square]struct {
	side Side
	bit  CastleRights
}{
	H1: {White, KingSide},
	A1: {White, QueenSide},
	H8: {Black, KingSide},
	A8: {Black, QueenSide},
}
