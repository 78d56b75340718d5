package scene

// EventKind is the kind of pointer event a frontend reports.
type EventKind uint8

const (
	PointerMove EventKind = iota
	PrimaryClick
	SecondaryClick
)

func (k EventKind) String() string {
	switch k {
	case PrimaryClick:
		return "primary"
	case SecondaryClick:
		return "secondary"
	default:
		return "move"
	}
}

// Event is a pointer event in screen coordinates.
type Event struct {
	Kind EventKind
	X, Y float64
}
