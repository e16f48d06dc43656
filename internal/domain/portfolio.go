package domain

// SimulationInput is the read-only input to every engine run: the holdings,
// the event catalog, and the goal list. The engine never mutates it; each
// run works on its own ledger copy.
type SimulationInput struct {
	Holdings []Holding
	Events   Events
	Goals    []Goal
}

// HoldingByID looks up a holding. The second return is false for dangling
// references, which callers must tolerate per the soft-reference policy.
func (in SimulationInput) HoldingByID(id string) (Holding, bool) {
	for _, h := range in.Holdings {
		if h.ID == id {
			return h, true
		}
	}
	return Holding{}, false
}

// PortfolioData is the JSON envelope the external persistence layer owns:
// the live records, the last projection, and an optional saved baseline for
// scenario comparison. Decoding tolerates missing lists; encoding reproduces
// an input the engine treats identically (round-trip property).
type PortfolioData struct {
	Investments         []Holding    `json:"investments"`
	Events              Events       `json:"events"`
	Goals               []Goal       `json:"goals"`
	Projections         Projection   `json:"projections,omitempty"`
	BaselineProjections Projection   `json:"baselineProjections,omitempty"`
	BaselineInvestments []Holding    `json:"baselineInvestments,omitempty"`
	BaselineEvents      Events       `json:"baselineEvents,omitempty"`
	BaselineGoals       []Goal       `json:"baselineGoals,omitempty"`
	InflationAdjusted   bool         `json:"inflationAdjusted,omitempty"`
	InflationRate       string       `json:"inflationRate,omitempty"`
	LastSaved           string       `json:"lastSaved,omitempty"`
}

// Input extracts the engine-facing portion of the envelope.
func (p PortfolioData) Input() SimulationInput {
	return SimulationInput{Holdings: p.Investments, Events: p.Events, Goals: p.Goals}
}

// SaveBaseline copies the current records and projection into the baseline
// slots so later edits can be compared against them.
func (p *PortfolioData) SaveBaseline() {
	p.BaselineProjections = append(Projection(nil), p.Projections...)
	p.BaselineInvestments = append([]Holding(nil), p.Investments...)
	p.BaselineEvents = append(Events(nil), p.Events...)
	p.BaselineGoals = append([]Goal(nil), p.Goals...)
}

// RestoreBaseline replaces the live records with the saved baseline. It is a
// no-op when no baseline exists.
func (p *PortfolioData) RestoreBaseline() bool {
	if p.BaselineInvestments == nil {
		return false
	}
	p.Investments = append([]Holding(nil), p.BaselineInvestments...)
	p.Events = append(Events(nil), p.BaselineEvents...)
	p.Goals = append([]Goal(nil), p.BaselineGoals...)
	return true
}

// ClearBaseline drops the saved baseline.
func (p *PortfolioData) ClearBaseline() {
	p.BaselineProjections = nil
	p.BaselineInvestments = nil
	p.BaselineEvents = nil
	p.BaselineGoals = nil
}
