package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"onlyexchange/address"
	"onlyexchange/catalog"
	"onlyexchange/checkout"
	"onlyexchange/web/db"
)

// CreateSession starts a fresh checkout for a product page load. The ?plan=
// query deep-links a plan: case-insensitive id match first, then label, else
// the first plan.
func CreateSession(c *gin.Context) {
	product, ok := catalog.Find(c.Param("product"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown product"})
		return
	}

	s := checkout.NewSession(uuid.New().String(), product, c.Query("plan"), sessionDeps)
	putSession(s)

	c.JSON(http.StatusOK, s.Snapshot())
}

func GetSession(c *gin.Context) {
	s, ok := getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// UpdateSelection applies plan/method/chain/email changes. Rejected with 409
// while a payment is in progress: the page must cancel first.
func UpdateSelection(c *gin.Context) {
	s, ok := getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req struct {
		Plan   *string `json:"plan"`
		Method *string `json:"method"`
		Chain  *string `json:"chain"`
		Email  *string `json:"email"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Method != nil {
		m, ok := checkout.ParseMethod(*req.Method)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
			return
		}
		if err := s.SelectMethod(m); err != nil {
			selectionError(c, err)
			return
		}
	}
	if req.Chain != nil {
		ch, ok := checkout.ParseChain(*req.Chain)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown network"})
			return
		}
		if err := s.SelectChain(ch); err != nil {
			selectionError(c, err)
			return
		}
	}
	if req.Plan != nil {
		if err := s.SelectPlan(*req.Plan); err != nil {
			selectionError(c, err)
			return
		}
	}
	if req.Email != nil {
		if err := s.SetEmail(*req.Email); err != nil {
			selectionError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, s.Snapshot())
}

func selectionError(c *gin.Context, err error) {
	if errors.Is(err, checkout.ErrSessionLocked) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// StartPayment drives the select -> pay transition and records the attempt in
// the order log. Validation failures leave the session untouched.
func StartPayment(c *gin.Context) {
	s, ok := getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if err := s.StartPayment(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, address.ErrUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not generate a payment address, please try again"})
		case errors.Is(err, checkout.ErrSuperseded), errors.Is(err, checkout.ErrSessionLocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	view := s.Snapshot()

	orderID := uuid.New().String()
	order := &db.Order{
		OrderID:       orderID,
		SessionID:     s.ID,
		Product:       view.Product,
		PlanID:        view.Plan.ID,
		Email:         view.Email,
		Method:        string(view.Method),
		Chain:         string(view.Chain),
		Address:       view.Address,
		LockedAmount:  view.LockedAmount,
		PriceUSDCents: int(view.Plan.PriceUSD*100 + 0.5),
		Status:        db.StatusPending,
	}
	if err := db.RecordOrder(order); err != nil {
		sessionDeps.Log.Error("failed to record order", map[string]any{"order_id": orderID, "error": err.Error()})
	} else {
		sessionMapMutex.Lock()
		orderIDMap[s.ID] = orderID
		sessionMapMutex.Unlock()
	}

	c.JSON(http.StatusOK, view)
}

// CancelSession is "Cancel / Start Over": back to select with a full window.
func CancelSession(c *gin.Context) {
	s, ok := getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	closeOrder(s)
	s.Cancel()
	c.JSON(http.StatusOK, s.Snapshot())
}
