package carts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imrishuroy/cart-reconcile/internal/aws"
	"github.com/imrishuroy/cart-reconcile/internal/reconcile"
)

// Store reads persisted carts from the carts table. Reconciliation is
// read-only, so the store exposes no write path.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new carts Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// LoadCart fetches the cart for key. Returns reconcile.ErrCartNotFound when
// no cart is persisted; a cart persisted with zero items returns an empty
// slice, which is a distinct outcome.
func (s *Store) LoadCart(ctx context.Context, key reconcile.CartKey) ([]reconcile.CartLineItem, error) {
	pk := map[string]types.AttributeValue{
		"cart_key": &types.AttributeValueMemberS{Value: PartitionKey(key)},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       pk,
	})
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, reconcile.ErrCartNotFound
	}

	var doc cartDocument
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	items := make([]reconcile.CartLineItem, 0, len(doc.Items))
	for _, l := range doc.Items {
		items = append(items, l.toLineItem())
	}
	return items, nil
}

// PartitionKey builds the composite table key for a cart.
func PartitionKey(key reconcile.CartKey) string {
	return fmt.Sprintf("%s#%s#%s", key.CustomerID, key.StoreCode, key.ProjectCode)
}
