package httpserver

import (
	"errors"
	"net/http"

	"merchstore/internal/cart"
	"merchstore/internal/domain"
	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Items         []cart.LineItem `json:"items"`
	TotalItems    int             `json:"totalItems"`
	SubtotalCents int64           `json:"subtotalCents"`
}

func cartJSON(c *gin.Context, crt *cart.Cart) {
	items := crt.Items()
	c.JSON(http.StatusOK, cartResponse{
		Items:         items,
		TotalItems:    crt.TotalItems(),
		SubtotalCents: crt.SubtotalCents(),
	})
}

func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cartJSON(c, currentSession(c).Cart)
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		p, err := catalog.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFoundResponse(c, "product")
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load product"})
			return
		}

		sess := currentSession(c)
		if err := sess.Cart.AddItem(cart.ItemInput{
			ID:             p.ID,
			Name:           p.Name,
			UnitPriceCents: p.PriceCents,
			Image:          p.Image,
		}, req.Quantity); err != nil {
			var verr *cart.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
			return
		}
		cartJSON(c, sess.Cart)
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		sess := currentSession(c)
		sess.Cart.UpdateQuantity(c.Param("id"), req.Quantity)
		cartJSON(c, sess.Cart)
	}
}

func removeCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.Cart.RemoveItem(c.Param("id"))
		cartJSON(c, sess.Cart)
	}
}

func clearCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.Cart.Clear()
		cartJSON(c, sess.Cart)
	}
}
