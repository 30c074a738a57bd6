package controllers

import (
	"net/http"
	"time"

	"github.com/fidelity-club/fidelity-be/config"
	"github.com/fidelity-club/fidelity-be/services"
	"github.com/fidelity-club/fidelity-be/websocket"
	"github.com/gin-gonic/gin"
)

type PurchaseController struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseController() *PurchaseController {
	return &PurchaseController{
		purchaseService: services.NewPurchaseService(config.DB),
	}
}

type RegisterPurchaseRequest struct {
	DNI           string  `json:"dni" binding:"required"`
	AmountInEuros float64 `json:"amount_in_euros" binding:"required"`
	PurchaseDate  string  `json:"purchase_date"` // YYYY-MM-DD
	InvoiceNumber string  `json:"invoice_number"`
	Observation   string  `json:"observation"`
}

// RegisterPurchase resolves the client by DNI, appends the purchase and
// assigns floor(amount) points.
func (pc *PurchaseController) RegisterPurchase(c *gin.Context) {
	var req RegisterPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido. Use YYYY-MM-DD"})
			return
		}
		purchaseDate = &parsed
	}

	user, err := pc.purchaseService.FindUserByDNI(req.DNI)
	if err != nil {
		respondError(c, err)
		return
	}

	purchase, points, level, err := pc.purchaseService.RegisterPurchase(
		user.ID, req.AmountInEuros, purchaseDate, req.InvoiceNumber, req.Observation)
	if err != nil {
		respondError(c, err)
		return
	}

	config.WSHub.BroadcastEvent(websocket.EventPurchaseRecorded, websocket.PurchaseEvent{
		PurchaseID:     purchase.ID,
		UserID:         user.ID,
		AmountInEuros:  purchase.AmountInEuros,
		PointsAssigned: purchase.PointsAssigned,
		UserPoints:     points,
		UserLevel:      string(level),
	})
	config.WSHub.BroadcastEvent(websocket.EventDashboardRefresh, websocket.DashboardRefreshEvent{
		Reason: "purchase",
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Compra registrada y puntos asignados",
		"purchase":    purchase,
		"user_points": points,
		"user_level":  level,
	})
}
