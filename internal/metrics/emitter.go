package metrics

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/imrishuroy/cart-reconcile/internal/aws"
	"github.com/imrishuroy/cart-reconcile/internal/reconcile"
)

// Emitter publishes reconciliation outcome metrics to CloudWatch. Emission
// is best-effort from the caller's point of view: a failed put must never
// fail the reconciliation itself.
type Emitter struct {
	client    aws.CloudWatchAPI
	namespace string
}

// NewEmitter returns an Emitter bound to a metric namespace.
func NewEmitter(client aws.CloudWatchAPI, namespace string) *Emitter {
	return &Emitter{
		client:    client,
		namespace: namespace,
	}
}

// EmitReport publishes per-report counters, dimensioned by store code.
func (e *Emitter) EmitReport(ctx context.Context, storeCode string, report *reconcile.ValidationReport) error {
	dims := []cwtypes.Dimension{
		{Name: awsString("StoreCode"), Value: &storeCode},
	}

	data := []cwtypes.MetricDatum{
		datum("ItemsValidated", float64(report.TotalItems), dims),
		datum("InvalidItems", float64(report.TotalInvalidItems), dims),
		datum("PriceUpdatedItems", float64(len(report.PriceUpdatedItems)), dims),
	}
	if report.Summary.HasOutOfStock {
		data = append(data, datum("CartsWithOutOfStock", 1, dims))
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &e.namespace,
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

// awsString helper
func awsString(s string) *string { return &s }

func datum(name string, value float64, dims []cwtypes.Dimension) cwtypes.MetricDatum {
	return cwtypes.MetricDatum{
		MetricName: &name,
		Value:      &value,
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: dims,
	}
}
