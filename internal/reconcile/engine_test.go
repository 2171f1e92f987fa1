package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// stubCartStore returns a fixed line-item slice or error.
type stubCartStore struct {
	items []CartLineItem
	err   error
}

func (s *stubCartStore) LoadCart(ctx context.Context, key CartKey) ([]CartLineItem, error) {
	return s.items, s.err
}

// stubResolver resolves from a fixed record map and counts calls.
type stubResolver struct {
	records map[string]CatalogRecord
	err     error
	calls   int
	codes   []string
}

func (s *stubResolver) ResolveMany(ctx context.Context, codes []string) (map[string]CatalogRecord, error) {
	s.calls++
	s.codes = codes
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func testKey() CartKey {
	return CartKey{CustomerID: "cust-1", StoreCode: "store-1", ProjectCode: "proj-1"}
}

func TestValidate_CartNotFound(t *testing.T) {
	engine := NewEngine(&stubCartStore{err: ErrCartNotFound}, &stubResolver{})

	_, err := engine.Validate(context.Background(), testKey())

	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestValidate_EmptyCart(t *testing.T) {
	resolver := &stubResolver{}
	engine := NewEngine(&stubCartStore{items: []CartLineItem{}}, resolver)

	report, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Code != CodeCartEmpty {
		t.Fatalf("Code = %q, want %q", report.Code, CodeCartEmpty)
	}
	if !report.Valid || report.TotalItems != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Summary != (Summary{}) {
		t.Fatalf("all summary flags must be false: %+v", report.Summary)
	}
	if resolver.calls != 0 {
		t.Fatal("empty cart must not hit the catalog")
	}
}

func TestValidate_CatalogUnavailable(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{{ProductCode: "sku-1", Quantity: 1, Price: 10}}}
	resolver := &stubResolver{err: fmt.Errorf("%w: connection reset", ErrCatalogUnavailable)}
	engine := NewEngine(store, resolver)

	_, err := engine.Validate(context.Background(), testKey())

	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestValidate_AllValidCart(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-1", Quantity: 2, Price: 10},
		{ProductCode: "sku-2", Quantity: 1, Price: 5.5},
	}}
	resolver := &stubResolver{records: map[string]CatalogRecord{
		"sku-1": {ProductCode: "sku-1", Price: 10, Active: true, Stock: 10},
		"sku-2": {ProductCode: "sku-2", Price: 5.5, Active: true, Stock: 3},
	}}
	engine := NewEngine(store, resolver)

	report, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Valid || report.ValidItems != 2 || report.TotalInvalidItems != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.InvalidItems) != 0 || len(report.PriceUpdatedItems) != 0 {
		t.Fatal("expected empty buckets")
	}
}

func TestValidate_SingleBatchedCatalogLookup(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-1", Quantity: 1, Price: 10},
		{ProductCode: "sku-2", Quantity: 1, Price: 10},
		{ProductCode: "sku-1", Quantity: 2, Price: 10}, // duplicate code
	}}
	resolver := &stubResolver{records: map[string]CatalogRecord{
		"sku-1": {ProductCode: "sku-1", Price: 10, Active: true, Stock: 10},
		"sku-2": {ProductCode: "sku-2", Price: 10, Active: true, Stock: 10},
	}}
	engine := NewEngine(store, resolver)

	if _, err := engine.Validate(context.Background(), testKey()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolver.calls != 1 {
		t.Fatalf("expected one batched lookup, got %d", resolver.calls)
	}
	if len(resolver.codes) != 2 || resolver.codes[0] != "sku-1" || resolver.codes[1] != "sku-2" {
		t.Fatalf("expected distinct codes in cart order, got %v", resolver.codes)
	}
}

func TestValidate_PriceIncreaseOnly(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-1", Quantity: 1, Price: 100},
	}}
	resolver := &stubResolver{records: map[string]CatalogRecord{
		"sku-1": {ProductCode: "sku-1", Price: 120, Active: true, Stock: 10},
	}}
	engine := NewEngine(store, resolver)

	report, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Valid || !report.Summary.HasPriceChanges {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.PriceUpdatedItems) != 1 {
		t.Fatalf("expected one price-updated entry, got %d", len(report.PriceUpdatedItems))
	}
	price := report.PriceUpdatedItems[0].Price
	if price == nil {
		t.Fatal("expected price-delta annotation on the line")
	}
	if price.Old != 100 || price.New != 120 || price.Difference != 20 {
		t.Fatalf("unexpected delta: %+v", price)
	}
	if price.PercentageChange == nil || *price.PercentageChange != 20 {
		t.Fatalf("unexpected percentage: %v", price.PercentageChange)
	}
}

func TestValidate_MissingProductYieldsSingleIssue(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-gone", Quantity: 1, Price: 10},
	}}
	engine := NewEngine(store, &stubResolver{records: map[string]CatalogRecord{}})

	report, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Valid || len(report.InvalidItems) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	line := report.InvalidItems[0]
	if line.Catalog != nil {
		t.Fatal("unresolved line must carry no catalog record")
	}
	if len(line.Issues) != 1 || line.Issues[0].Kind != KindProductNotFound {
		t.Fatalf("expected exactly one PRODUCT_NOT_FOUND issue, got %+v", line.Issues)
	}
}

func TestValidate_CombinedStockAndPriceFailure(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-1", Quantity: 5, Price: 100},
	}}
	resolver := &stubResolver{records: map[string]CatalogRecord{
		"sku-1": {ProductCode: "sku-1", Price: 90, Active: true, Stock: 2},
	}}
	engine := NewEngine(store, resolver)

	report, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Valid {
		t.Fatal("blocking stock issue must invalidate the report")
	}
	if len(report.InvalidItems) != 1 || len(report.PriceUpdatedItems) != 0 {
		t.Fatalf("line must appear only in the invalid bucket: %+v", report)
	}
	line := report.InvalidItems[0]
	if len(line.Issues) != 2 {
		t.Fatalf("expected both issues on the line, got %+v", line.Issues)
	}
	if line.Issues[0].Kind != KindInsufficientStock || line.Issues[1].Kind != KindPriceChanged {
		t.Fatalf("unexpected kinds: %s, %s", line.Issues[0].Kind, line.Issues[1].Kind)
	}
	if line.Price != nil {
		t.Fatal("blocked line must not carry the price-delta annotation")
	}
}

func TestValidate_OutOfStockScenario(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-1", Quantity: 3, Price: 10},
	}}
	resolver := &stubResolver{records: map[string]CatalogRecord{
		"sku-1": {ProductCode: "sku-1", Price: 10, Active: true, Stock: 0},
	}}
	engine := NewEngine(store, resolver)

	report, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Valid || !report.Summary.HasOutOfStock {
		t.Fatalf("unexpected report: %+v", report)
	}
	iss := report.InvalidItems[0].Issues[0]
	if iss.Kind != KindOutOfStock {
		t.Fatalf("Kind = %s, want %s", iss.Kind, KindOutOfStock)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	store := &stubCartStore{items: []CartLineItem{
		{ProductCode: "sku-1", Quantity: 5, Price: 100},
		{ProductCode: "sku-2", Quantity: 1, Price: 10},
		{ProductCode: "sku-3", Quantity: 2, Price: 20},
	}}
	resolver := &stubResolver{records: map[string]CatalogRecord{
		"sku-1": {ProductCode: "sku-1", Price: 110, Active: true, Stock: 2},
		"sku-2": {ProductCode: "sku-2", Price: 10, Active: true, Stock: 10},
	}}
	engine := NewEngine(store, resolver)

	first, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Validate(context.Background(), testKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Fatalf("reports differ across identical runs:\n%s\n%s", a, b)
	}
}
