package ingest

// Signals carries the demand-side inputs that an import file does not
// provide. They come from an external analytics collaborator; this core
// never synthesizes them from randomness.
type Signals struct {
	TurnoverRate  float64 // fraction in [0,1]
	LeadTime      int     // days, positive
	AverageDemand int     // units/day, positive
}

// SignalSource supplies Signals for a record under construction.
type SignalSource interface {
	Signals(skuID, name string, quantity int) Signals
}

// StaticSignals is the default SignalSource: fixed turnover and lead time,
// average demand derived from the on-hand quantity assuming a 30-day cover.
// Deterministic, so repeated imports of the same file agree byte for byte.
type StaticSignals struct {
	TurnoverRate float64
	LeadTime     int
}

// DefaultSignals returns the source used when no analytics collaborator is
// wired in.
func DefaultSignals() StaticSignals {
	return StaticSignals{TurnoverRate: 0.5, LeadTime: 7}
}

func (s StaticSignals) Signals(_, _ string, quantity int) Signals {
	demand := quantity / 30
	if demand < 1 {
		demand = 1
	}

	turnover := s.TurnoverRate
	if turnover < 0 {
		turnover = 0
	} else if turnover > 1 {
		turnover = 1
	}

	leadTime := s.LeadTime
	if leadTime < 1 {
		leadTime = 1
	}

	return Signals{
		TurnoverRate:  turnover,
		LeadTime:      leadTime,
		AverageDemand: demand,
	}
}
