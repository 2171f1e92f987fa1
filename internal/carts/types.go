package carts

import (
	"time"

	"github.com/imrishuroy/cart-reconcile/internal/reconcile"
)

// cartDocument is the item stored in the carts DynamoDB table, one per
// customer/store/project key.
type cartDocument struct {
	CartKey     string     `dynamodbav:"cart_key"` // PK: customer#store#project
	CustomerID  string     `dynamodbav:"customer_id"`
	StoreCode   string     `dynamodbav:"store_code"`
	ProjectCode string     `dynamodbav:"project_code"`
	Items       []cartLine `dynamodbav:"items,omitempty"`
	CreatedAt   time.Time  `dynamodbav:"created_at"`
	UpdatedAt   time.Time  `dynamodbav:"updated_at"`
}

// cartLine is one persisted line item: the price and name are the values
// captured when the shopper added the product.
type cartLine struct {
	ProductCode string  `dynamodbav:"product_code"`
	Quantity    int     `dynamodbav:"quantity"`
	Price       float64 `dynamodbav:"price"`
	Name        string  `dynamodbav:"name,omitempty"`
}

func (l cartLine) toLineItem() reconcile.CartLineItem {
	return reconcile.CartLineItem{
		ProductCode: l.ProductCode,
		Quantity:    l.Quantity,
		Price:       l.Price,
		Name:        l.Name,
	}
}
