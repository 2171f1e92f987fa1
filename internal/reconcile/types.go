package reconcile

// Issue kinds. Closed set; each kind maps to a fixed action verb and
// severity (see classify.go).
const (
	KindProductNotFound    = "PRODUCT_NOT_FOUND"
	KindProductInactive    = "PRODUCT_INACTIVE"
	KindPriceChanged       = "PRICE_CHANGED"
	KindOutOfStock         = "OUT_OF_STOCK"
	KindInsufficientStock  = "INSUFFICIENT_STOCK"
	KindQuantityExceedsMax = "QUANTITY_EXCEEDS_MAX"
)

// Action types. PRICE_CHANGED is the only advisory kind: it is surfaced to
// the shopper but does not block checkout on its own.
const (
	ActionTypeBlocking = "blocking"
	ActionTypeAdvisory = "advisory"
)

// Action verbs attached to issues and suggested-action options.
const (
	ActionUpdatePrice    = "update_price"
	ActionReduceQuantity = "reduce_quantity"
	ActionRemoveItem     = "remove_item"
	ActionAcceptNewPrice = "accept_new_price"
)

// CartKey identifies one shopper's persisted cart within a store/project.
type CartKey struct {
	CustomerID  string
	StoreCode   string
	ProjectCode string
}

// CartLineItem is one product/quantity pair as persisted in the cart, with
// the price and name captured when the shopper added it. Read-only to the
// engine.
type CartLineItem struct {
	ProductCode string  `json:"productCode"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Name        string  `json:"name,omitempty"`
}

// CatalogRecord is the live state of a product at snapshot time. MaxAllowed
// is the per-order quantity cap; zero means no cap configured.
type CatalogRecord struct {
	ProductCode string  `json:"productCode"`
	Price       float64 `json:"price"`
	MRP         float64 `json:"mrp,omitempty"`
	Active      bool    `json:"active"`
	Stock       int     `json:"stock"`
	MaxAllowed  int     `json:"maxAllowed,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	PackSize    string  `json:"packSize,omitempty"`
	PackUnit    string  `json:"packUnit,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// PriceChange describes a captured-vs-live price delta. PercentageChange is
// relative to the captured price, rounded to 2 decimal places, and omitted
// when the captured price is zero.
type PriceChange struct {
	Old              float64  `json:"old"`
	New              float64  `json:"new"`
	Difference       float64  `json:"difference"`
	PercentageChange *float64 `json:"percentageChange,omitempty"`
}

// StockDetail carries the stock comparison for stock-kind issues only.
type StockDetail struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

// Option is one selectable remediation choice. Quantity is set only for
// reduce_quantity options.
type Option struct {
	Action   string `json:"action"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity,omitempty"`
}

// SuggestedAction offers the shopper one or more remediation options.
type SuggestedAction struct {
	Options []Option `json:"options"`
}

// Issue is one classified divergence on a cart line. The optional payload
// fields form a variant per Kind: Price is set only for PRICE_CHANGED,
// Stock only for OUT_OF_STOCK / INSUFFICIENT_STOCK, MaxAllowed only for
// QUANTITY_EXCEEDS_MAX.
type Issue struct {
	Kind       string           `json:"kind"`
	Message    string           `json:"message"`
	Action     string           `json:"action"`
	ActionType string           `json:"actionType"`
	Price      *PriceChange     `json:"price,omitempty"`
	Stock      *StockDetail     `json:"stock,omitempty"`
	MaxAllowed int              `json:"maxAllowed,omitempty"`
	Suggested  *SuggestedAction `json:"suggestedAction,omitempty"`
}

// Blocking reports whether this issue prevents checkout of its line.
func (i Issue) Blocking() bool { return i.ActionType == ActionTypeBlocking }

// LineResult is the per-line outcome. Catalog is nil when the product could
// not be resolved. Price is the delta annotation, set only when the price
// changed and the line carries no blocking issue.
type LineResult struct {
	Item    CartLineItem   `json:"item"`
	Catalog *CatalogRecord `json:"catalog,omitempty"`
	Valid   bool           `json:"valid"`
	Issues  []Issue        `json:"issues,omitempty"`
	Price   *PriceChange   `json:"price,omitempty"`
}

// Summary holds the OR-reduced flags across all lines. RequiresAction is
// true when any line carries a blocking issue or a price change.
type Summary struct {
	HasPriceChanges bool `json:"hasPriceChanges"`
	HasStockIssues  bool `json:"hasStockIssues"`
	HasOutOfStock   bool `json:"hasOutOfStock"`
	RequiresAction  bool `json:"requiresAction"`
}

// ValidationReport is the sole artifact of one reconciliation pass. It is
// never persisted by the engine. Code distinguishes terminal short-circuit
// outcomes (CART_EMPTY) from ordinary reports.
type ValidationReport struct {
	Valid             bool         `json:"valid"`
	Code              string       `json:"code,omitempty"`
	TotalItems        int          `json:"totalItems"`
	ValidItems        int          `json:"validItems"`
	TotalInvalidItems int          `json:"totalInvalidItems"`
	InvalidItems      []LineResult `json:"invalidItems"`
	PriceUpdatedItems []LineResult `json:"priceUpdatedItems"`
	Summary           Summary      `json:"summary"`
}
