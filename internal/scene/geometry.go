package scene

import (
	"math"
	"sort"

	"github.com/hailam/boardtouch/internal/board"
)

// Geometry maps the 8x8 board onto screen coordinates. Squares may be
// non-square (terminal cells are taller than wide).
type Geometry struct {
	OriginX, OriginY float64 // top-left corner of a8 (White at the bottom)
	SquareW, SquareH float64
	Margin           float64 // frame width around the board, in squares
	PickRadius       float64 // piece pick radius, in squares
}

// DefaultGeometry lays the board out at the origin with square pixels.
func DefaultGeometry(squareSize float64) Geometry {
	return Geometry{
		SquareW:    squareSize,
		SquareH:    squareSize,
		Margin:     0.35,
		PickRadius: 0.42,
	}
}

// boardCentre is the centre of the board in square units.
const boardCentre = 4.0

// toUnits converts a screen point to square units relative to the origin.
func (g Geometry) toUnits(x, y float64) (float64, float64) {
	return (x - g.OriginX) / g.SquareW, (y - g.OriginY) / g.SquareH
}

// fromUnits converts square units back to a screen point.
func (g Geometry) fromUnits(u, v float64) (float64, float64) {
	return g.OriginX + u*g.SquareW, g.OriginY + v*g.SquareH
}

// rotate turns (u, v) by angle about the board centre.
func rotate(u, v, angle float64) (float64, float64) {
	if angle == 0 {
		return u, v
	}
	sin, cos := math.Sincos(angle)
	du, dv := u-boardCentre, v-boardCentre
	return boardCentre + du*cos - dv*sin, boardCentre + du*sin + dv*cos
}

// squareCentreUnits is the unrotated centre of sq in square units.
func squareCentreUnits(sq board.Square) (float64, float64) {
	return float64(sq.File()) + 0.5, float64(7-sq.Rank()) + 0.5
}

// SquareCentre returns the screen centre of sq under the current view.
func (s *Scene) SquareCentre(sq board.Square) (float64, float64) {
	u, v := squareCentreUnits(sq)
	u, v = rotate(u, v, s.ViewAngle())
	return s.geom.fromUnits(u, v)
}

// Project maps a point in board units (0-8 on both axes, a8 corner at the
// origin) to the screen under the current view.
func (s *Scene) Project(u, v float64) (float64, float64) {
	u, v = rotate(u, v, s.ViewAngle())
	return s.geom.fromUnits(u, v)
}

// VisualCentre returns the screen point a piece visual is drawn around,
// including its offset. Lifting (positive Y) moves it up the screen.
func (s *Scene) VisualCentre(v Visual) (float64, float64) {
	u, w := s.visualUnits(v)
	return s.geom.fromUnits(u, w)
}

func (s *Scene) visualUnits(v Visual) (float64, float64) {
	u, w := squareCentreUnits(v.Square)
	u, w = rotate(u, w, s.ViewAngle())
	return u + v.Offset.X, w - v.Offset.Y + v.Offset.Z
}

// SquareAt returns the square under a screen point, or NoSquare.
func (s *Scene) SquareAt(x, y float64) board.Square {
	u, v := s.geom.toUnits(x, y)
	u, v = rotate(u, v, -s.ViewAngle())
	if u < 0 || u >= 8 || v < 0 || v >= 8 {
		return board.NoSquare
	}
	return board.NewSquare(int(u), 7-int(v))
}

// HitKind classifies what a pointer ray struck.
type HitKind uint8

const (
	HitPiece HitKind = iota
	HitSquare
	// HitFrame is the border around the squares; it never selects anything.
	HitFrame
)

func (k HitKind) String() string {
	switch k {
	case HitPiece:
		return "piece"
	case HitSquare:
		return "square"
	default:
		return "frame"
	}
}

// Hit is one intersection of a pointer ray with the scene.
type Hit struct {
	Kind   HitKind
	Square board.Square
	Handle board.Handle
	// Distance orders hits near to far.
	Distance float64
}

// CastRay returns everything under the screen point, nearest first: opaque
// pieces (closest centre first), then the square, then the frame.
func (s *Scene) CastRay(x, y float64) []Hit {
	var hits []Hit

	pu, pv := s.geom.toUnits(x, y)
	r := s.geom.PickRadius
	if r > 0 {
		for _, v := range s.visuals {
			if v.Material != Opaque {
				continue
			}
			cu, cv := s.visualUnits(*v)
			d := math.Hypot(pu-cu, pv-cv)
			if d <= r {
				hits = append(hits, Hit{Kind: HitPiece, Square: v.Square, Handle: v.Handle, Distance: d / r})
			}
		}
		sort.Slice(hits, func(i, j int) bool {
			if hits[i].Distance != hits[j].Distance {
				return hits[i].Distance < hits[j].Distance
			}
			return hits[i].Handle < hits[j].Handle
		})
	}

	if sq := s.SquareAt(x, y); sq != board.NoSquare {
		hits = append(hits, Hit{Kind: HitSquare, Square: sq, Handle: QuadHandle(sq), Distance: 2})
		return hits
	}

	u, v := rotate(pu, pv, -s.ViewAngle())
	m := s.geom.Margin
	if u >= -m && u < 8+m && v >= -m && v < 8+m {
		hits = append(hits, Hit{Kind: HitFrame, Square: board.NoSquare, Distance: 3})
	}
	return hits
}

// FirstRelevant returns the nearest piece or square hit.
func FirstRelevant(hits []Hit) (Hit, bool) {
	for _, h := range hits {
		if h.Kind == HitPiece || h.Kind == HitSquare {
			return h, true
		}
	}
	return Hit{}, false
}
