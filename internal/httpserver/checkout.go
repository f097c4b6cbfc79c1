package httpserver

import (
	"errors"
	"net/http"

	"merchstore/internal/checkout"
	"github.com/gin-gonic/gin"
)

func checkoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.FormFields
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout form"})
			return
		}

		sess := currentSession(c)
		order, err := sess.Checkout.Submit(c.Request.Context(), form)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrAuthRequired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in to place an order"})
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			default:
				var subErr *checkout.SubmissionError
				if errors.As(err, &subErr) {
					c.JSON(http.StatusBadGateway, gin.H{"error": subErr.Error(), "state": string(sess.Checkout.State())})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID,
			"state":   string(sess.Checkout.State()),
		})
	}
}

func listOrdersHandler(orders orderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		user := sess.Auth.CurrentUser()
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		if orders == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "orders unavailable"})
			return
		}
		list, err := orders.ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}
