package worker

// RevalidationMessage is the payload sent from API -> SQS -> Worker.
type RevalidationMessage struct {
	CustomerID    string `json:"customer_id"`
	StoreCode     string `json:"store_code"`
	ProjectCode   string `json:"project_code"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
