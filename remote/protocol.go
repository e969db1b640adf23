package remote

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Op names a request on the wire
type Op string

const (
	OpStart    Op = "start"
	OpResolve  Op = "resolve"
	OpRoundEnd Op = "round_end"
	OpCollect  Op = "collect"
)

// Request is one client frame; ID correlates the response
type Request struct {
	ID     uint64 `json:"id"`
	Op     Op     `json:"op"`
	Bet    string `json:"bet,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Response is one server frame
type Response struct {
	ID      uint64 `json:"id"`
	OK      bool   `json:"ok"`
	HitMine bool   `json:"hit_mine,omitempty"`

	// Revealed is indexed top row first
	Revealed core.RevealedMatrix `json:"revealed,omitempty"`
	Reward   *decimal.Decimal    `json:"reward,omitempty"`

	// Multipliers is sent on start, one per row, bottom row first
	Multipliers []decimal.Decimal `json:"multipliers,omitempty"`

	Error string `json:"error,omitempty"`
}

// ServerError is an ok=false response
type ServerError struct {
	Op      Op
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server rejected %s: %s", e.Op, e.Message)
}

func newResolve(row, col int) Request {
	return Request{Op: OpResolve, Row: &row, Col: &col}
}
