package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// Terminal outcomes. ErrCartNotFound means no cart is persisted for the
// key; an empty persisted cart is not an error and yields the empty report.
// ErrCatalogUnavailable wraps a snapshot fetch failure: the whole call
// fails rather than misreporting every product as missing.
var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CodeCartEmpty marks the short-circuit report returned for a persisted
// cart with zero line items.
const CodeCartEmpty = "CART_EMPTY"

// CartStore reads the persisted line items for a cart key.
type CartStore interface {
	LoadCart(ctx context.Context, key CartKey) ([]CartLineItem, error)
}

// CatalogResolver resolves product codes to live catalog records in one
// batched lookup, omitting codes that do not exist.
type CatalogResolver interface {
	ResolveMany(ctx context.Context, codes []string) (map[string]CatalogRecord, error)
}

// Engine runs one reconciliation pass per call. It is stateless and safe
// for concurrent use; every call fetches a fresh catalog snapshot.
type Engine struct {
	carts   CartStore
	catalog CatalogResolver
}

// NewEngine wires the engine to its collaborators.
func NewEngine(carts CartStore, catalog CatalogResolver) *Engine {
	return &Engine{carts: carts, catalog: catalog}
}

// Validate reconciles the persisted cart for key against the live catalog
// and returns the full report. It never mutates the cart.
func (e *Engine) Validate(ctx context.Context, key CartKey) (*ValidationReport, error) {
	items, err := e.carts.LoadCart(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		report := Aggregate(nil)
		report.Code = CodeCartEmpty
		return report, nil
	}

	records, err := e.catalog.ResolveMany(ctx, distinctCodes(items))
	if err != nil {
		return nil, fmt.Errorf("resolve catalog snapshot: %w", err)
	}

	results := make([]LineResult, 0, len(items))
	for _, item := range items {
		results = append(results, reconcileLine(item, records))
	}
	return Aggregate(results), nil
}

func reconcileLine(item CartLineItem, records map[string]CatalogRecord) LineResult {
	var record *CatalogRecord
	if rec, ok := records[item.ProductCode]; ok {
		record = &rec
	}

	facts := Compare(item, record)
	issues := Classify(item, facts)

	res := LineResult{
		Item:    item,
		Catalog: record,
		Issues:  issues,
		Valid:   true,
	}
	for _, iss := range issues {
		if iss.Blocking() {
			res.Valid = false
		}
	}
	// delta annotation only when the line remains usable
	if res.Valid && facts.PriceChanged {
		price := facts.Price
		res.Price = &price
	}
	return res
}

// distinctCodes preserves first-seen order so the batched lookup is
// deterministic for identical carts.
func distinctCodes(items []CartLineItem) []string {
	seen := make(map[string]struct{}, len(items))
	codes := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductCode]; ok {
			continue
		}
		seen[it.ProductCode] = struct{}{}
		codes = append(codes, it.ProductCode)
	}
	return codes
}
