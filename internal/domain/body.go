package domain

// Body identifies one member of the fixed celestial body set.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	TrueNode
	Chiron
)

var bodyNames = [...]string{
	"sun", "moon", "mercury", "venus", "mars", "jupiter",
	"saturn", "uranus", "neptune", "pluto", "true_node", "chiron",
}

func (b Body) String() string {
	if b < Sun || int(b) >= len(bodyNames) {
		return "unknown"
	}
	return bodyNames[b]
}

// ChartBodies is the full set queried for every chart. Queries are
// independent; the order here carries no meaning.
var ChartBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter,
	Saturn, Uranus, Neptune, Pluto, TrueNode, Chiron,
}
