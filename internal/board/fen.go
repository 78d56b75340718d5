package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// StartPosition is the canonical initial layout: full castling rights, White to move.
const StartPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Layout is a decoded position string. Records carry no visuals.
type Layout struct {
	Squares [SquareCount]Record
	Turn    Side
	Castle  [2]CastleRights
}

// Parse decodes a position string into a Layout.
//
// Only the placement, side-to-move and castling fields are interpreted.
// Whatever follows the castling field (en passant target, clocks) is accepted
// as is and ignored. On error no Layout is returned.
func Parse(description string) (*Layout, error) {
	l := &Layout{Turn: White}
	for i := range l.Squares {
		l.Squares[i] = Empty
	}

	i, err := parsePlacement(l, description)
	if err != nil {
		return nil, err
	}

	// Side to move (field 1)
	if i, err = skipSpaces(description, i, "side to move"); err != nil {
		return nil, err
	}
	switch description[i] {
	case 'w':
		l.Turn = White
	case 'b':
		l.Turn = Black
	default:
		return nil, malformed(description, i, "side to move must be 'w' or 'b'")
	}
	i++
	if i < len(description) && description[i] != ' ' {
		return nil, malformed(description, i, "side to move must be a single letter")
	}

	// Castling rights (field 2)
	if i, err = skipSpaces(description, i, "castling rights"); err != nil {
		return nil, err
	}
	if err := parseCastling(l, description, i); err != nil {
		return nil, err
	}

	return l, nil
}

// parsePlacement fills l from the placement field and returns the index just
// past it.
func parsePlacement(l *Layout, s string) (int, error) {
	rank := 7 // position strings start from rank 8
	file := 0

	i := 0
	for ; i < len(s) && s[i] != ' '; i++ {
		c := s[i]
		switch {
		case c == '/':
			if file != 8 {
				return i, malformed(s, i, fmt.Sprintf("rank %d has %d files, want 8", rank+1, file))
			}
			if rank == 0 {
				return i, malformed(s, i, "more than 8 ranks")
			}
			rank--
			file = 0

		case c >= '0' && c <= '9':
			n := int(c - '0')
			if n < 1 || n > 8 {
				return i, malformed(s, i, "empty run must be 1-8")
			}
			if file+n > 8 {
				return i, malformed(s, i, fmt.Sprintf("rank %d has more than 8 files", rank+1))
			}
			file += n

		default:
			rec, ok := recordFromLetter(c)
			if !ok {
				return i, malformed(s, i, "unrecognized piece letter")
			}
			if file > 7 {
				return i, malformed(s, i, fmt.Sprintf("rank %d has more than 8 files", rank+1))
			}
			l.Squares[NewSquare(file, rank)] = rec
			file++
		}
	}

	if file != 8 {
		return i, malformed(s, i, fmt.Sprintf("rank %d has %d files, want 8", rank+1, file))
	}
	if rank != 0 {
		return i, malformed(s, i, fmt.Sprintf("placement has %d ranks, want 8", 8-rank))
	}
	return i, nil
}

// parseCastling reads the castling token starting at i.
func parseCastling(l *Layout, s string, i int) error {
	for ; i < len(s) && s[i] != ' '; i++ {
		switch s[i] {
		case 'K':
			l.Castle[White] |= KingSide
		case 'Q':
			l.Castle[White] |= QueenSide
		case 'k':
			l.Castle[Black] |= KingSide
		case 'q':
			l.Castle[Black] |= QueenSide
		case '-':
			// no rights from this character
		default:
			return malformed(s, i, "castling rights must be '-' or a combination of KQkq")
		}
	}
	return nil
}

// skipSpaces expects at least one space at i followed by a non-empty field.
func skipSpaces(s string, i int, field string) (int, error) {
	if i >= len(s) {
		return i, malformed(s, i, "missing "+field+" field")
	}
	if s[i] != ' ' {
		return i, malformed(s, i, "expected a space before the "+field+" field")
	}
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i >= len(s) {
		return i, malformed(s, i, "missing "+field+" field")
	}
	return i, nil
}

func malformed(s string, i int, reason string) error {
	var ch rune
	if i < len(s) {
		ch, _ = utf8.DecodeRuneInString(s[i:])
	}
	return &MalformedPositionError{Index: i, Char: ch, Reason: reason}
}

// String returns the position string for the layout. The fields the parser
// ignores are written as "- 0 1".
func (l *Layout) String() string {
	return formatPosition(&l.Squares, l.Turn, l.Castle)
}

func formatPosition(squares *[SquareCount]Record, turn Side, castle [2]CastleRights) string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			rec := squares[NewSquare(file, rank)]
			if rec.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(rec.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if turn == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(castlingString(castle))

	sb.WriteString(" - 0 1")
	return sb.String()
}
