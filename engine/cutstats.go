package engine

import "fmt"

// CutStatistics counts how search nodes ended during one Search.
type CutStatistics struct {
	BetaCutoffs    uint64
	KillerCutoffs  uint64
	DrawNodes      uint64
	MateNodes      uint64
	StalemateNodes uint64
}

// Lines renders the counters one per line, ready to be prefixed with
// "info string" by a protocol driver.
func (c CutStatistics) Lines() []string {
	return []string{
		"Cut statistics:",
		fmt.Sprintf("  Beta cutoffs: %d", c.BetaCutoffs),
		fmt.Sprintf("  Killer cutoffs: %d", c.KillerCutoffs),
		fmt.Sprintf("  Draw nodes: %d", c.DrawNodes),
		fmt.Sprintf("  Mate nodes: %d", c.MateNodes),
		fmt.Sprintf("  Stalemate nodes: %d", c.StalemateNodes),
	}
}
