package spec

type Alternative struct {
	Number  int      `json:"number"`
	Row     int      `json:"row"`
	Symbols []string `json:"symbols"`
}

type NonTerminal struct {
	Name         string         `json:"name"`
	Alternatives []*Alternative `json:"alternatives"`
	First        []string       `json:"first"`
	Follow       []string       `json:"follow"`
	Nullable     bool           `json:"nullable"`
	Reachable    bool           `json:"reachable"`
}

// Report is the result of an analysis in a form suitable for printing or serializing. Non-terminals
// appear in definition order; the symbols of each set appear in a fixed order.
type Report struct {
	Start        string         `json:"start"`
	Terminals    []string       `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
}

func (r *Report) NonTerminal(name string) (*NonTerminal, bool) {
	for _, nt := range r.NonTerminals {
		if nt.Name == name {
			return nt, true
		}
	}
	return nil, false
}
