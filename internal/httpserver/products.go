package httpserver

import (
	"errors"
	"net/http"

	"merchstore/internal/domain"
	"github.com/gin-gonic/gin"
)

type productSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription,omitempty"`
	PriceCents       int64  `json:"priceCents"`
	Image            string `json:"image"`
}

func listProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load products"})
			return
		}
		out := make([]productSummary, 0, len(products))
		for _, p := range products {
			out = append(out, productSummary{
				ID:               p.ID,
				Name:             p.Name,
				ShortDescription: p.ShortDescription,
				PriceCents:       p.PriceCents,
				Image:            p.Image,
			})
		}
		c.JSON(http.StatusOK, gin.H{"products": out})
	}
}

func getProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFoundResponse(c, "product")
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load product"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
