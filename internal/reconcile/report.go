package reconcile

// Aggregate folds the ordered per-line results into the final report.
// Lines partition into fully valid, price-updated-but-valid (advisory
// issues only), and invalid (at least one blocking issue); original cart
// order is preserved within each bucket. Pure: identical inputs always
// produce an identical report.
func Aggregate(results []LineResult) *ValidationReport {
	report := &ValidationReport{
		TotalItems:        len(results),
		InvalidItems:      []LineResult{},
		PriceUpdatedItems: []LineResult{},
	}

	for _, res := range results {
		blocking := false
		for _, iss := range res.Issues {
			if iss.Blocking() {
				blocking = true
			}
			switch iss.Kind {
			case KindPriceChanged:
				report.Summary.HasPriceChanges = true
			case KindOutOfStock:
				report.Summary.HasOutOfStock = true
				report.Summary.HasStockIssues = true
			case KindInsufficientStock:
				report.Summary.HasStockIssues = true
			}
		}

		switch {
		case blocking:
			report.TotalInvalidItems++
			report.InvalidItems = append(report.InvalidItems, res)
		case len(res.Issues) > 0:
			// advisory price change only; still counts as valid
			report.ValidItems++
			report.PriceUpdatedItems = append(report.PriceUpdatedItems, res)
		default:
			report.ValidItems++
		}
	}

	report.Valid = report.TotalInvalidItems == 0
	report.Summary.RequiresAction = report.TotalInvalidItems > 0 || report.Summary.HasPriceChanges
	return report
}
