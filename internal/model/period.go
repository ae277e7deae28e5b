package model

import "fmt"

// Period is a labelled match period with its own accumulated clock.
type Period string

const (
	Q1 Period = "Q1"
	Q2 Period = "Q2"
	Q3 Period = "Q3"
	Q4 Period = "Q4"
	OT Period = "OT"
)

// Periods lists every period in match order.
var Periods = []Period{Q1, Q2, Q3, Q4, OT}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Q1, Q2, Q3, Q4, OT:
		return true
	}
	return false
}

// ParsePeriod parses a period label such as "Q3" or "OT".
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown period %q (want one of Q1, Q2, Q3, Q4, OT)", s)
	}
	return p, nil
}

// QuarterClocks maps each period to its accumulated seconds.
type QuarterClocks map[Period]int64

// NewQuarterClocks returns zeroed clocks for every period.
func NewQuarterClocks() QuarterClocks {
	qc := make(QuarterClocks, len(Periods))
	for _, p := range Periods {
		qc[p] = 0
	}
	return qc
}

// Total sums all periods.
func (qc QuarterClocks) Total() int64 {
	var total int64
	for _, s := range qc {
		total += s
	}
	return total
}
