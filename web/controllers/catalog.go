package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onlyexchange/catalog"
	"onlyexchange/checkout"
)

func Products(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": catalog.Products()})
}

func Product(c *gin.Context) {
	product, ok := catalog.Find(c.Param("product"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Methods lists the payment method pickers: per-method chain lists and
// whether a chain pick is mandatory before payment.
func Methods(c *gin.Context) {
	type methodInfo struct {
		Method        checkout.Method  `json:"method"`
		Stable        bool             `json:"stable"`
		RequiresChain bool             `json:"requires_chain"`
		Chains        []checkout.Chain `json:"chains,omitempty"`
	}

	out := make([]methodInfo, 0, len(checkout.Methods))
	for _, m := range checkout.Methods {
		out = append(out, methodInfo{
			Method:        m,
			Stable:        m.Stable(),
			RequiresChain: m.RequiresChain(),
			Chains:        m.Chains(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"methods": out})
}
