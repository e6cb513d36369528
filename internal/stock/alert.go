package stock

import "fmt"

// LowStockThreshold is the quantity below which a product counts as low on
// stock.
const LowStockThreshold = 5

type AlertKind string

const (
	AlertLowStock   AlertKind = "low_stock"
	AlertOutOfStock AlertKind = "out_of_stock"
)

// AlertEvent is a queued alert intent. It is created inside the mutation's
// unit of work but only delivered after a successful commit.
type AlertEvent struct {
	Kind        AlertKind
	ProductName string
	Quantity    int
}

func (e AlertEvent) Message() string {
	switch e.Kind {
	case AlertOutOfStock:
		return fmt.Sprintf("%s is now OUT OF STOCK!", e.ProductName)
	default:
		return fmt.Sprintf("%s is low on stock (%d left)", e.ProductName, e.Quantity)
	}
}

// AlertDecision is the outcome of one threshold evaluation: the new value of
// the one-shot flag and which alert, if any, should fire now.
type AlertDecision struct {
	Flag  bool
	Event AlertKind // empty when nothing fires
}

// EvaluateAlert decides alert side effects from the post-mutation quantity and
// the persisted one-shot flag. Pure, no I/O.
//
// Out-of-stock always fires, even with the flag set: every occurrence of zero
// is operationally significant, so oscillating to zero alerts each time. The
// flag is left untouched at zero, which means a later restock into the low
// band re-triggers a low-stock alert only if the flag was still clear.
// Low-stock fires once per dip below the threshold; replenishing to the
// threshold or above silently re-arms it.
func EvaluateAlert(newQuantity int, alertSent bool) AlertDecision {
	switch {
	case newQuantity == 0:
		return AlertDecision{Flag: alertSent, Event: AlertOutOfStock}
	case newQuantity < LowStockThreshold && !alertSent:
		return AlertDecision{Flag: true, Event: AlertLowStock}
	case newQuantity >= LowStockThreshold && alertSent:
		return AlertDecision{Flag: false}
	default:
		return AlertDecision{Flag: alertSent}
	}
}
