package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/imrishuroy/cart-reconcile/internal/aws"
	"github.com/imrishuroy/cart-reconcile/internal/carts"
	"github.com/imrishuroy/cart-reconcile/internal/catalog"
	"github.com/imrishuroy/cart-reconcile/internal/reconcile"
	"github.com/imrishuroy/cart-reconcile/internal/validation"
)

// HandlerConfig groups dependencies for the cart handlers.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI
	CartsTable     string
	CatalogTable   string
	QueueURL       string
}

// RegisterCartRoutes registers the cart validation API.
func RegisterCartRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	cartStore := carts.NewStore(cfg.DynamoDBClient, cfg.CartsTable)
	resolver := catalog.NewResolver(cfg.DynamoDBClient, cfg.CatalogTable)
	engine := reconcile.NewEngine(cartStore, resolver)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)

	r.POST("/cart/validate", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ValidateCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		report, err := engine.Validate(ctx, reconcile.CartKey{
			CustomerID:  req.CustomerID,
			StoreCode:   req.StoreCode,
			ProjectCode: req.ProjectCode,
		})
		if err != nil {
			writeValidateError(c, err)
			return
		}

		c.JSON(http.StatusOK, report)
	})

	r.POST("/cart/revalidate", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.RevalidateCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		correlationID := c.GetHeader("X-Request-Id")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		payload, _ := json.Marshal(map[string]string{
			"customer_id":    req.CustomerID,
			"store_code":     req.StoreCode,
			"project_code":   req.ProjectCode,
			"correlation_id": correlationID,
		})
		attrs := map[string]string{
			"correlation_id": correlationID,
			"store_code":     req.StoreCode,
		}

		if err := publisher.SendRevalidationMessage(ctx, string(payload), attrs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue_failed", "detail": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"message": "revalidation queued", "correlation_id": correlationID})
	})
}

// writeValidateError maps engine outcomes onto HTTP statuses. A missing
// cart is the client's problem, an unreachable catalog is ours/upstream's.
func writeValidateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reconcile.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "CART_NOT_FOUND"})
	case errors.Is(err, reconcile.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "CATALOG_UNAVAILABLE", "detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation_failed", "detail": err.Error()})
	}
}
