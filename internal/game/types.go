package game

// --- Enums ---

type Shape int

const (
	ShapeDiamond Shape = iota
	ShapeOval
	ShapeSquiggle
)

func (s Shape) String() string {
	switch s {
	case ShapeDiamond:
		return "diamond"
	case ShapeOval:
		return "oval"
	case ShapeSquiggle:
		return "squiggle"
	default:
		return "unknown"
	}
}

type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorPurple
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Number is the count of symbols printed on a card (1-3).
type Number int

const (
	NumberOne Number = iota + 1
	NumberTwo
	NumberThree
)

func (n Number) String() string {
	switch n {
	case NumberOne:
		return "one"
	case NumberTwo:
		return "two"
	case NumberThree:
		return "three"
	default:
		return "unknown"
	}
}

type Shading int

const (
	ShadingSolid Shading = iota
	ShadingStriped
	ShadingOpen
)

func (s Shading) String() string {
	switch s {
	case ShadingSolid:
		return "solid"
	case ShadingStriped:
		return "striped"
	case ShadingOpen:
		return "open"
	default:
		return "unknown"
	}
}

var (
	AllShapes   = []Shape{ShapeDiamond, ShapeOval, ShapeSquiggle}
	AllColors   = []Color{ColorRed, ColorGreen, ColorPurple}
	AllNumbers  = []Number{NumberOne, NumberTwo, NumberThree}
	AllShadings = []Shading{ShadingSolid, ShadingStriped, ShadingOpen}
)

const (
	DefaultBoardSize = 12
	MatchSize        = 3
	TripleHealth     = 3
)
