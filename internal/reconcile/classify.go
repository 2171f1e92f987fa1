package reconcile

import "fmt"

// actionTypeByKind is the fixed kind -> severity mapping. It is not
// request-dependent: PRICE_CHANGED is the only advisory kind.
var actionTypeByKind = map[string]string{
	KindProductNotFound:    ActionTypeBlocking,
	KindProductInactive:    ActionTypeBlocking,
	KindOutOfStock:         ActionTypeBlocking,
	KindInsufficientStock:  ActionTypeBlocking,
	KindQuantityExceedsMax: ActionTypeBlocking,
	KindPriceChanged:       ActionTypeAdvisory,
}

// actionByKind is the fixed kind -> action verb mapping.
var actionByKind = map[string]string{
	KindProductNotFound:    ActionRemoveItem,
	KindProductInactive:    ActionRemoveItem,
	KindOutOfStock:         ActionRemoveItem,
	KindInsufficientStock:  ActionReduceQuantity,
	KindQuantityExceedsMax: ActionReduceQuantity,
	KindPriceChanged:       ActionUpdatePrice,
}

// stockIssueRules is the precedence table for the stock dimension: the
// first status match wins, so zero availability classifies as OUT_OF_STOCK
// rather than INSUFFICIENT_STOCK.
var stockIssueRules = []struct {
	Status StockStatus
	Kind   string
}{
	{StockOut, KindOutOfStock},
	{StockInsufficient, KindInsufficientStock},
}

// Classify turns divergence facts into the ordered issue list for one line.
// Issues are additive across dimensions; a line may carry several at once.
// A missing product yields exactly one PRODUCT_NOT_FOUND issue.
func Classify(item CartLineItem, facts Facts) []Issue {
	if !facts.Exists {
		return []Issue{newIssue(KindProductNotFound,
			fmt.Sprintf("%s is no longer available", displayName(item)),
			removeOnlySuggestion())}
	}

	var issues []Issue

	if !facts.IsActive {
		issues = append(issues, newIssue(KindProductInactive,
			fmt.Sprintf("%s has been discontinued", displayName(item)),
			removeOnlySuggestion()))
	}

	if kind, ok := stockIssueKind(facts.Stock); ok {
		iss := newIssue(kind, "", nil)
		iss.Stock = &StockDetail{Available: facts.Available, Requested: facts.Requested}
		switch kind {
		case KindOutOfStock:
			iss.Message = fmt.Sprintf("%s is out of stock", displayName(item))
			iss.Suggested = removeOnlySuggestion()
		case KindInsufficientStock:
			iss.Message = fmt.Sprintf("only %d of %s left, you asked for %d",
				facts.Available, displayName(item), facts.Requested)
			iss.Suggested = &SuggestedAction{Options: []Option{
				{Action: ActionReduceQuantity, Label: fmt.Sprintf("Reduce quantity to %d", facts.Available), Quantity: facts.Available},
				{Action: ActionRemoveItem, Label: "Remove from cart"},
			}}
		}
		issues = append(issues, iss)
	}

	if facts.ExceedsMax {
		iss := newIssue(KindQuantityExceedsMax,
			fmt.Sprintf("maximum %d of %s allowed per order", facts.MaxAllowed, displayName(item)),
			&SuggestedAction{Options: []Option{
				{Action: ActionReduceQuantity, Label: fmt.Sprintf("Reduce quantity to %d", facts.MaxAllowed), Quantity: facts.MaxAllowed},
			}})
		iss.MaxAllowed = facts.MaxAllowed
		issues = append(issues, iss)
	}

	if facts.PriceChanged {
		price := facts.Price
		iss := newIssue(KindPriceChanged,
			fmt.Sprintf("price of %s changed from %.2f to %.2f", displayName(item), price.Old, price.New),
			&SuggestedAction{Options: []Option{
				{Action: ActionAcceptNewPrice, Label: fmt.Sprintf("Accept new price %.2f", price.New)},
				{Action: ActionRemoveItem, Label: "Remove from cart"},
			}})
		iss.Price = &price
		issues = append(issues, iss)
	}

	return issues
}

func stockIssueKind(status StockStatus) (string, bool) {
	for _, rule := range stockIssueRules {
		if rule.Status == status {
			return rule.Kind, true
		}
	}
	return "", false
}

func newIssue(kind, message string, suggested *SuggestedAction) Issue {
	return Issue{
		Kind:       kind,
		Message:    message,
		Action:     actionByKind[kind],
		ActionType: actionTypeByKind[kind],
		Suggested:  suggested,
	}
}

func removeOnlySuggestion() *SuggestedAction {
	return &SuggestedAction{Options: []Option{
		{Action: ActionRemoveItem, Label: "Remove from cart"},
	}}
}

func displayName(item CartLineItem) string {
	if item.Name != "" {
		return item.Name
	}
	return item.ProductCode
}
