package catalog

import "github.com/imrishuroy/cart-reconcile/internal/reconcile"

// catalogItem is the item stored in the catalog DynamoDB table.
type catalogItem struct {
	ProductCode string  `dynamodbav:"product_code"` // PK
	Price       float64 `dynamodbav:"price"`
	MRP         float64 `dynamodbav:"mrp,omitempty"`
	Active      bool    `dynamodbav:"active"`
	Stock       int     `dynamodbav:"stock"`
	MaxAllowed  int     `dynamodbav:"max_allowed,omitempty"` // 0 = no per-order cap
	Brand       string  `dynamodbav:"brand,omitempty"`
	PackSize    string  `dynamodbav:"pack_size,omitempty"`
	PackUnit    string  `dynamodbav:"pack_unit,omitempty"`
	ImageURL    string  `dynamodbav:"image_url,omitempty"`
}

func (c catalogItem) toRecord() reconcile.CatalogRecord {
	return reconcile.CatalogRecord{
		ProductCode: c.ProductCode,
		Price:       c.Price,
		MRP:         c.MRP,
		Active:      c.Active,
		Stock:       c.Stock,
		MaxAllowed:  c.MaxAllowed,
		Brand:       c.Brand,
		PackSize:    c.PackSize,
		PackUnit:    c.PackUnit,
		ImageURL:    c.ImageURL,
	}
}
