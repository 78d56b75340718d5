package board

// Side represents the colour of a piece or of the player to move.
type Side uint8

const (
	White Side = iota
	Black
	NoSide Side = 2
)

// Other returns the opposite side. NoSide stays NoSide.
func (s Side) Other() Side {
	if s >= NoSide {
		return NoSide
	}
	return s ^ 1
}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoSide"
	}
}

// Kind is the kind of piece occupying a square. None marks an empty square.
type Kind uint8

const (
	None Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the position-string letter for the kind (lowercase).
func (k Kind) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if k > King {
		return ' '
	}
	return chars[k]
}

// Handle is an opaque reference to a visual owned by the rendering layer.
// The board only stores and transfers handles; it never dereferences them.
type Handle uint32

// NoHandle means "no visual".
const NoHandle Handle = 0

// Record is the content of one square.
type Record struct {
	Kind   Kind
	Side   Side
	Visual Handle
}

// Empty is the record held by unoccupied squares.
var Empty = Record{Kind: None, Side: NoSide, Visual: NoHandle}

// IsEmpty returns true if no piece occupies the record.
func (r Record) IsEmpty() bool {
	return r.Kind == None
}

// Letter returns the position-string letter for the record.
// Uppercase for white, lowercase for black, ' ' when empty.
func (r Record) Letter() byte {
	c := r.Kind.Char()
	if r.Side == White && c != ' ' {
		c -= 'a' - 'A'
	}
	return c
}

// recordFromLetter converts a position-string letter to a Record.
func recordFromLetter(c byte) (Record, bool) {
	side := Black
	if c >= 'A' && c <= 'Z' {
		side = White
		c += 'a' - 'A'
	}

	var k Kind
	switch c {
	case 'p':
		k = Pawn
	case 'n':
		k = Knight
	case 'b':
		k = Bishop
	case 'r':
		k = Rook
	case 'q':
		k = Queen
	case 'k':
		k = King
	default:
		return Empty, false
	}
	return Record{Kind: k, Side: side}, true
}
