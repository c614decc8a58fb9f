package domain

// Destination is a requested stop. Ref is an opaque caller handle (for
// example a stall id); the planner only carries it through.
type Destination struct {
	Position Position
	Ref      any
}

// Visit is one planning node in the solved order. Refs lists the handles
// of every requested destination that shares the position, in request order.
type Visit struct {
	Position Position
	Refs     []any
}

// Leg describes the steps between two consecutive route nodes.
// Steps[StartStep] is From and Steps[EndStep] is To.
type Leg struct {
	From      Position
	To        Position
	StartStep int
	EndStep   int
}

// Length is the number of grid moves in the leg.
func (l Leg) Length() int { return l.EndStep - l.StartStep }

// Route is the output of a planning request.
//
// Order excludes the start and holds each distinct destination position
// once, in visiting order. Steps is the contiguous 4-connected walk from
// the start through every position in Order. Destinations is the caller's
// list as given, duplicates included.
type Route struct {
	Start        Position
	Order        []Position
	Visits       []Visit
	Steps        []Position
	Legs         []Leg
	Distance     int
	Destinations []Destination
}

// LegFor returns the leg containing step index i. A junction step belongs
// to the leg that arrives at it.
func (r *Route) LegFor(i int) (Leg, bool) {
	for _, l := range r.Legs {
		if i >= l.StartStep && i <= l.EndStep {
			return l, true
		}
	}
	return Leg{}, false
}
