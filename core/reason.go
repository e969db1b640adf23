package core

// Round-end reasons sent to the backend
const (
	// ReasonMineHit is also sent when the top row is cleared; the backend keys on this value
	ReasonMineHit = "mine_hit"
	ReasonCollect = "collect"
)
