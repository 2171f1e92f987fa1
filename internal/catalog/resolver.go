package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/imrishuroy/cart-reconcile/internal/aws"
	"github.com/imrishuroy/cart-reconcile/internal/reconcile"
)

// DynamoDB caps BatchGetItem at 100 keys per request.
const batchGetLimit = 100

// Resolver fetches live catalog records in batched reads. Every call hits
// the table: price and stock are volatile, so snapshots are never cached.
type Resolver struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewResolver creates a Resolver over the catalog table.
func NewResolver(client aws.DynamoDBAPI, tableName string) *Resolver {
	return &Resolver{
		client:    client,
		tableName: tableName,
	}
}

// ResolveMany resolves product codes to catalog records in one logical
// batch (chunked at the service limit, unprocessed keys re-requested).
// Codes with no record are omitted from the result. Any transport failure
// fails the whole resolution; a partial snapshot would misclassify missing
// products.
func (r *Resolver) ResolveMany(ctx context.Context, codes []string) (map[string]reconcile.CatalogRecord, error) {
	records := make(map[string]reconcile.CatalogRecord, len(codes))

	for start := 0; start < len(codes); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(codes) {
			end = len(codes)
		}
		if err := r.fetchBatch(ctx, codes[start:end], records); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *Resolver) fetchBatch(ctx context.Context, codes []string, records map[string]reconcile.CatalogRecord) error {
	keys := make([]map[string]types.AttributeValue, 0, len(codes))
	for _, code := range codes {
		keys = append(keys, map[string]types.AttributeValue{
			"product_code": &types.AttributeValueMemberS{Value: code},
		})
	}

	request := map[string]types.KeysAndAttributes{
		r.tableName: {Keys: keys},
	}

	for len(request) > 0 {
		out, err := r.client.BatchGetItem(ctx, &dyn.BatchGetItemInput{
			RequestItems: request,
		})
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				return fmt.Errorf("%w: %s: %s", reconcile.ErrCatalogUnavailable, apiErr.ErrorCode(), apiErr.ErrorMessage())
			}
			return fmt.Errorf("%w: %v", reconcile.ErrCatalogUnavailable, err)
		}

		for _, item := range out.Responses[r.tableName] {
			var rec catalogItem
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return fmt.Errorf("unmarshal catalog record: %w", err)
			}
			records[rec.ProductCode] = rec.toRecord()
		}

		request = out.UnprocessedKeys
	}
	return nil
}
