package play

// Result is the final state of one click sequence
type Result int

const (
	// ResultRejected: not started, wrong row or a sequence already running; nothing changed
	ResultRejected Result = iota
	// ResultRecovered: remote resolution failed, the row is clickable again
	ResultRecovered
	ResultMineHit
	// ResultAdvanced: safe cell, the next row is active
	ResultAdvanced
	// ResultCompleted: safe cell on row 0, round won
	ResultCompleted
)

func (r Result) String() string {
	switch r {
	case ResultRejected:
		return "rejected"
	case ResultRecovered:
		return "recovered"
	case ResultMineHit:
		return "mine_hit"
	case ResultAdvanced:
		return "advanced"
	case ResultCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
