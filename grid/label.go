package grid

import (
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/parameter"
)

// Label shows the reward multiplier of one row
type Label struct {
	Row   int
	Value decimal.Decimal
	Pos   core.Point
}

// Text renders the multiplier, e.g. "x1.45"
func (l Label) Text() string {
	return parameter.LabelPrefix + l.Value.StringFixed(2)
}

// labelWidth is the widest label text, zero when no multipliers
func labelWidth(values []decimal.Decimal) int {
	w := 0
	for _, v := range values {
		w = max(w, len(Label{Value: v}.Text()))
	}
	return w
}
