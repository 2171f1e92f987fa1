package reconcile

import "math"

// StockStatus is the stock comparison outcome for one line.
type StockStatus string

const (
	StockSufficient   StockStatus = "SUFFICIENT"
	StockInsufficient StockStatus = "INSUFFICIENT"
	StockOut          StockStatus = "OUT_OF_STOCK"
)

// Facts are the raw divergence dimensions for one cart line against its
// resolved catalog record, before any message or severity is attached.
type Facts struct {
	Exists   bool
	IsActive bool

	PriceChanged bool
	Price        PriceChange

	Stock     StockStatus
	Available int
	Requested int

	ExceedsMax bool
	MaxAllowed int
}

// Compare evaluates every divergence dimension for one line. When record is
// nil only Exists=false is set; nothing else is evaluated. An inactive
// record still gets price and stock facts for diagnostic completeness.
func Compare(item CartLineItem, record *CatalogRecord) Facts {
	if record == nil {
		return Facts{Exists: false}
	}

	f := Facts{
		Exists:    true,
		IsActive:  record.Active,
		Requested: item.Quantity,
		Available: record.Stock,
	}

	if diff := record.Price - item.Price; diff != 0 {
		f.PriceChanged = true
		f.Price = PriceChange{
			Old:        item.Price,
			New:        record.Price,
			Difference: diff,
		}
		// percentage is undefined when the captured price is zero
		if item.Price != 0 {
			pct := round2(diff / item.Price * 100)
			f.Price.PercentageChange = &pct
		}
	}

	f.Stock = compareStock(record.Stock, item.Quantity)

	// max-allowed is independent of stock sufficiency
	if record.MaxAllowed > 0 && item.Quantity > record.MaxAllowed {
		f.ExceedsMax = true
		f.MaxAllowed = record.MaxAllowed
	}

	return f
}

// compareStock orders the two numerically-overlapping outcomes explicitly:
// zero availability is OUT_OF_STOCK even though it also satisfies the
// insufficient comparison.
func compareStock(available, requested int) StockStatus {
	switch {
	case available == 0:
		return StockOut
	case available < requested:
		return StockInsufficient
	default:
		return StockSufficient
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
