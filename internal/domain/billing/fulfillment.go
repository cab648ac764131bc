package billing

import (
	"github.com/google/uuid"
)

// StockSnapshot maps product ids to quantity on hand at a point in time.
// Missing products read as zero availability.
type StockSnapshot map[uuid.UUID]int64

// Available returns the availability for a product id, zero when unknown
func (s StockSnapshot) Available(productID uuid.UUID) int64 {
	return s[productID]
}

// LineVerdict is the fulfillment judgement for a single order line
type LineVerdict struct {
	ProductID   uuid.UUID `json:"product_id"`
	Requested   int64     `json:"requested"`
	Available   int64     `json:"available"`
	Short       int64     `json:"short"`
	Fulfillable bool      `json:"fulfillable"`
}

// Evaluation is the fulfillment judgement for a whole order. It is a
// computed classification, never stored: accepting an order always
// re-evaluates against the stock it locks.
type Evaluation struct {
	OrderID     uuid.UUID     `json:"order_id"`
	Fulfillable bool          `json:"fulfillable"`
	Lines       []LineVerdict `json:"lines"`
}

// ShortLines returns only the verdicts whose availability fell short
func (e Evaluation) ShortLines() []LineVerdict {
	short := make([]LineVerdict, 0)
	for _, line := range e.Lines {
		if !line.Fulfillable {
			short = append(short, line)
		}
	}
	return short
}

// Evaluate judges an order against a stock snapshot. It is a pure
// function: no side effects, and the same inputs always produce the
// same evaluation. The order is fulfillable only when every line is.
func Evaluate(order *Order, stock StockSnapshot) Evaluation {
	evaluation := Evaluation{
		OrderID:     order.ID,
		Fulfillable: true,
		Lines:       make([]LineVerdict, 0, len(order.Lines)),
	}

	for _, line := range order.Lines {
		available := stock.Available(line.ProductID)
		verdict := LineVerdict{
			ProductID:   line.ProductID,
			Requested:   line.Quantity,
			Available:   available,
			Fulfillable: available >= line.Quantity,
		}
		if !verdict.Fulfillable {
			verdict.Short = line.Quantity - available
			evaluation.Fulfillable = false
		}
		evaluation.Lines = append(evaluation.Lines, verdict)
	}

	return evaluation
}
