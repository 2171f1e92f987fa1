package validation

// ValidateCartRequest is the payload for POST /cart/validate.
type ValidateCartRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`  // business id for customer
	StoreCode   string `json:"store_code" validate:"required"`   // store the cart was built against
	ProjectCode string `json:"project_code" validate:"required"` // project/tenant scope
}

// RevalidateCartRequest is the payload for POST /cart/revalidate. It is the
// same key shape; the request is enqueued rather than served synchronously.
type RevalidateCartRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	StoreCode   string `json:"store_code" validate:"required"`
	ProjectCode string `json:"project_code" validate:"required"`
}
