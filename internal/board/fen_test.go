package board

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func TestParseStartPosition(t *testing.T) {
	l, err := Parse(StartPosition)
	if err != nil {
		t.Fatalf("Failed to parse start position: %v", err)
	}

	counts := map[Record]int{}
	empty := 0
	for _, rec := range l.Squares {
		if rec.IsEmpty() {
			empty++
			continue
		}
		counts[rec]++
	}

	if empty != 32 {
		t.Errorf("Expected 32 empty squares, got %d", empty)
	}

	want := map[Kind]int{Pawn: 8, Knight: 2, Bishop: 2, Rook: 2, Queen: 1, King: 1}
	for _, side := range []Side{White, Black} {
		for kind, n := range want {
			got := counts[Record{Kind: kind, Side: side}]
			if got != n {
				t.Errorf("%v %v: got %d, want %d", side, kind, got, n)
			}
		}
	}

	tests := []struct {
		sq   string
		kind Kind
		side Side
	}{
		{"a1", Rook, White},
		{"b1", Knight, White},
		{"c1", Bishop, White},
		{"d1", Queen, White},
		{"e1", King, White},
		{"g1", Knight, White},
		{"e2", Pawn, White},
		{"d8", Queen, Black},
		{"e8", King, Black},
		{"h8", Rook, Black},
		{"a7", Pawn, Black},
		{"e4", None, NoSide},
	}
	for _, tc := range tests {
		sq, _ := ParseSquare(tc.sq)
		rec := l.Squares[sq]
		if rec.Kind != tc.kind || rec.Side != tc.side {
			t.Errorf("%s: got %v %v, want %v %v", tc.sq, rec.Side, rec.Kind, tc.side, tc.kind)
		}
	}

	if l.Turn != White {
		t.Errorf("Expected White to move, got %v", l.Turn)
	}
	if l.Castle[White] != BothSides || l.Castle[Black] != BothSides {
		t.Errorf("Expected full castling rights, got %v/%v", l.Castle[White], l.Castle[Black])
	}
}

// TestParseMatchesReference decodes the same strings with notnil/chess and
// compares every square, the side to move and the castling bits.
func TestParseMatchesReference(t *testing.T) {
	positions := []string{
		StartPosition,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/8/8/4K3 b - - 0 1",
	}

	for _, fen := range positions {
		t.Run(fen, func(t *testing.T) {
			l, err := Parse(fen)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			opt, err := chess.FEN(fen)
			if err != nil {
				t.Fatalf("reference rejected %q: %v", fen, err)
			}
			ref := chess.NewGame(opt).Position()

			for sq := Square(0); sq < NoSquare; sq++ {
				got := l.Squares[sq]
				p := ref.Board().Piece(chess.Square(sq))
				if got.Kind != kindFromReference(p.Type()) || got.Side != sideFromReference(p.Color()) {
					t.Errorf("%v: got %v %v, reference %v", sq, got.Side, got.Kind, p)
				}
			}

			if l.Turn != sideFromReference(ref.Turn()) {
				t.Errorf("turn: got %v, reference %v", l.Turn, ref.Turn())
			}

			cr := ref.CastleRights()
			checks := []struct {
				side Side
				bit  CastleRights
				want bool
			}{
				{White, KingSide, cr.CanCastle(chess.White, chess.KingSide)},
				{White, QueenSide, cr.CanCastle(chess.White, chess.QueenSide)},
				{Black, KingSide, cr.CanCastle(chess.Black, chess.KingSide)},
				{Black, QueenSide, cr.CanCastle(chess.Black, chess.QueenSide)},
			}
			for _, c := range checks {
				if l.Castle[c.side].Has(c.bit) != c.want {
					t.Errorf("%v castling bit %d: got %v, reference %v", c.side, c.bit, !c.want, c.want)
				}
			}
		})
	}
}

func kindFromReference(pt chess.PieceType) Kind {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	default:
		return None
	}
}

func sideFromReference(c chess.Color) Side {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	default:
		return NoSide
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
		char  rune
	}{
		{"empty", "", 0, 0},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 16, '/'},
		{"long rank", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 18, '9'},
		{"overflow run", "rnbqkbnr/pppppppp/44p/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 20, 'p'},
		{"bad letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBXKBNR w KQkq - 0 1", 38, 'X'},
		{"zero run", "rnbqkbnr/pppppppp/08/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 18, '0'},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 41, ' '},
		{"nine ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 36, '/'},
		{"missing side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", 43, 0},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", 44, 'x'},
		{"long side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR wb KQkq - 0 1", 45, 'b'},
		{"missing castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", 45, 0},
		{"trailing space only", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ", 46, 0},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", 48, 'x'},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("Expected error, got layout %v", l)
			}
			if l != nil {
				t.Errorf("Expected no layout on error")
			}
			if !errors.Is(err, ErrMalformedPosition) {
				t.Errorf("errors.Is(%v, ErrMalformedPosition) = false", err)
			}
			var mpe *MalformedPositionError
			if !errors.As(err, &mpe) {
				t.Fatalf("Expected *MalformedPositionError, got %T", err)
			}
			if mpe.Index != tc.index || mpe.Char != tc.char {
				t.Errorf("got index %d char %q (%s), want index %d char %q",
					mpe.Index, mpe.Char, mpe.Reason, tc.index, tc.char)
			}
		})
	}
}

func TestParseCastlingField(t *testing.T) {
	tests := []struct {
		field        string
		white, black CastleRights
	}{
		{"-", NoCastling, NoCastling},
		{"KQkq", BothSides, BothSides},
		{"K", KingSide, NoCastling},
		{"q", NoCastling, QueenSide},
		{"Qk", QueenSide, KingSide},
		{"K-q", KingSide, QueenSide},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			l, err := Parse("4k3/8/8/8/8/8/8/4K3 w " + tc.field)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if l.Castle[White] != tc.white || l.Castle[Black] != tc.black {
				t.Errorf("got %v/%v, want %v/%v", l.Castle[White], l.Castle[Black], tc.white, tc.black)
			}
		})
	}
}

func TestParseIgnoresTrailingFields(t *testing.T) {
	a, err := Parse("4k3/8/8/8/8/8/8/4K3 b - e3 17 42")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, err := Parse("4k3/8/8/8/8/8/8/4K3 b -")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *a != *b {
		t.Errorf("trailing fields changed the layout")
	}
}

func TestParseEndsAfterCastling(t *testing.T) {
	full, err := Parse("r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"castling is last", "r3k2r/8/8/8/8/8/8/R3K2R b Kq", true},
		{"space after castling", "r3k2r/8/8/8/8/8/8/R3K2R b Kq ", true},
		{"side is last", "r3k2r/8/8/8/8/8/8/R3K2R b", false},
		{"placement only", "r3k2r/8/8/8/8/8/8/R3K2R", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Parse(tc.input)
			if !tc.ok {
				if !errors.Is(err, ErrMalformedPosition) {
					t.Fatalf("Parse(%q) error = %v, want ErrMalformedPosition", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if *l != *full {
				t.Errorf("Parse(%q) differs from the six-field form", tc.input)
			}
		})
	}
}

func TestLayoutString(t *testing.T) {
	positions := []string{
		StartPosition,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 0 1",
		"r3k3/8/8/8/8/8/8/4K2R w Kq - 0 1",
	}
	for _, fen := range positions {
		l, err := Parse(fen)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", fen, err)
		}
		if got := l.String(); got != fen {
			t.Errorf("String() = %q, want %q", got, fen)
		}
	}
}
