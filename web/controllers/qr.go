package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onlyexchange/checkout"
	"onlyexchange/qrcode"
)

// SessionQR renders the session's payment URI as a PNG, the local fallback for
// the hosted QR image services.
func SessionQR(c *gin.Context) {
	s, ok := getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	view := s.Snapshot()
	if view.Step != checkout.StepPay || view.PaymentURI == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No payment in progress"})
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))
	png, err := qrcode.PNG(view.PaymentURI, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
