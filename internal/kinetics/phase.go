package kinetics

// Phase identifies a microconstituent of the steel
type Phase int

const (
	Ferrite Phase = iota
	Pearlite
	Bainite
	Martensite
	Austenite
)

// Diffusional lists the time-dependent phases in the order they draw on
// the remaining austenite.
var Diffusional = []Phase{Ferrite, Pearlite, Bainite}

// Phases lists every phase tracked in a phase fraction state
var Phases = []Phase{Ferrite, Pearlite, Bainite, Martensite, Austenite}

func (p Phase) String() string {
	switch p {
	case Ferrite:
		return "ferrite"
	case Pearlite:
		return "pearlite"
	case Bainite:
		return "bainite"
	case Martensite:
		return "martensite"
	case Austenite:
		return "austenite"
	}
	return "unknown"
}

// Title returns the capitalised phase name used in legends
func (p Phase) Title() string {
	s := p.String()
	return string(s[0]-'a'+'A') + s[1:]
}
