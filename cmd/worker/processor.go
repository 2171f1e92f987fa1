package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/cart-reconcile/internal/aws"
	"github.com/imrishuroy/cart-reconcile/internal/carts"
	"github.com/imrishuroy/cart-reconcile/internal/catalog"
	"github.com/imrishuroy/cart-reconcile/internal/metrics"
	"github.com/imrishuroy/cart-reconcile/internal/reconcile"
)

// cartValidator is the slice of the engine the processor needs.
type cartValidator interface {
	Validate(ctx context.Context, key reconcile.CartKey) (*reconcile.ValidationReport, error)
}

type reportEmitter interface {
	EmitReport(ctx context.Context, storeCode string, report *reconcile.ValidationReport) error
}

// Processor handles SQS revalidation messages: it reruns reconciliation for
// the referenced cart and publishes the outcome as metrics. It never
// mutates the cart and persists nothing.
type Processor struct {
	engine  cartValidator
	metrics reportEmitter
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, cartsTable, catalogTable, metricNamespace string) *Processor {
	cartStore := carts.NewStore(clients.DynamoDB, cartsTable)
	resolver := catalog.NewResolver(clients.DynamoDB, catalogTable)
	return &Processor{
		engine:  reconcile.NewEngine(cartStore, resolver),
		metrics: metrics.NewEmitter(clients.CloudWatch, metricNamespace),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg RevalidationMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] revalidating cart customer=%s store=%s project=%s corr=%s",
		msg.CustomerID, msg.StoreCode, msg.ProjectCode, msg.CorrelationID)

	report, err := p.engine.Validate(ctx, reconcile.CartKey{
		CustomerID:  msg.CustomerID,
		StoreCode:   msg.StoreCode,
		ProjectCode: msg.ProjectCode,
	})
	if errors.Is(err, reconcile.ErrCartNotFound) {
		// cart was deleted between enqueue and processing; retrying cannot help
		log.Printf("[worker] cart gone customer=%s store=%s, dropping message", msg.CustomerID, msg.StoreCode)
		return nil
	}
	if err != nil {
		return fmt.Errorf("revalidate cart: %w", err)
	}

	if err := p.metrics.EmitReport(ctx, msg.StoreCode, report); err != nil {
		// metrics are best-effort; the reconciliation itself succeeded
		log.Printf("[worker] metrics emit failed: %v", err)
	}

	log.Printf("[worker] revalidated customer=%s store=%s valid=%t items=%d invalid=%d priceUpdated=%d",
		msg.CustomerID, msg.StoreCode, report.Valid, report.TotalItems,
		report.TotalInvalidItems, len(report.PriceUpdatedItems))
	return nil
}
