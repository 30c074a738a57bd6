package controllers

import (
	"net/http"
	"strconv"

	"github.com/fidelity-club/fidelity-be/config"
	"github.com/fidelity-club/fidelity-be/models"
	"github.com/fidelity-club/fidelity-be/services"
	"github.com/fidelity-club/fidelity-be/websocket"
	"github.com/gin-gonic/gin"
)

type CouponController struct {
	couponService     *services.CouponService
	redemptionService *services.RedemptionService
	userService       *services.UserService
}

func NewCouponController() *CouponController {
	codes := services.NewCodeGenerator()
	authService := services.NewAuthService(config.DB)
	return &CouponController{
		couponService:     services.NewCouponService(config.DB, config.Store, codes),
		redemptionService: services.NewRedemptionService(config.DB, config.Store, codes),
		userService:       services.NewUserService(config.DB, config.Store, authService),
	}
}

type RedeemCouponRequest struct {
	CouponID uint `json:"coupon_id" binding:"required"`
}

type UseCouponRequest struct {
	RedemptionID uint `json:"redemption_id" binding:"required"`
}

type UpdateCouponRequest struct {
	Title              *string `json:"title"`
	CostInPoints       *int    `json:"cost_in_points"`
	DiscountBlanco     *int    `json:"discount_blanco"`
	DiscountSilver     *int    `json:"discount_silver"`
	DiscountGold       *int    `json:"discount_gold"`
	DiscountPlatinum   *int    `json:"discount_platinum"`
	IsHighlighted      *bool   `json:"is_highlighted"`
	IsActive           *bool   `json:"is_active"`
	ProductType        *string `json:"product_type"`
	ProductDescription *string `json:"product_description"`
}

// CreateCoupon reads a multipart form so the admin can attach a product
// image in the same request.
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	input := services.CreateCouponInput{
		Title:              c.PostForm("title"),
		CostInPoints:       formInt(c, "cost_in_points"),
		DiscountBlanco:     formInt(c, "discount_blanco"),
		DiscountSilver:     formInt(c, "discount_silver"),
		DiscountGold:       formInt(c, "discount_gold"),
		DiscountPlatinum:   formInt(c, "discount_platinum"),
		IsHighlighted:      c.PostForm("is_highlighted") == "true",
		ProductType:        c.PostForm("product_type"),
		ProductDescription: c.PostForm("product_description"),
	}

	if file, err := c.FormFile("image"); err == nil {
		data, ext, err := readUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error al leer el archivo"})
			return
		}
		input.Image = data
		input.ImageExt = ext
	}

	coupon, err := cc.couponService.CreateCoupon(input)
	if err != nil {
		respondError(c, err)
		return
	}

	config.WSHub.BroadcastEvent(websocket.EventCouponCreated, websocket.CouponEvent{
		CouponID: coupon.ID,
		Title:    coupon.Title,
		Action:   "created",
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cupón creado",
		"coupon":  coupon,
	})
}

func (cc *CouponController) GetCoupon(c *gin.Context) {
	id, err := couponID(c)
	if err != nil {
		return
	}

	coupon, err := cc.couponService.GetCoupon(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// GetCoupons lists active coupons. Clients get each coupon annotated with
// their level's discount and the resulting cost; staff see raw records.
func (cc *CouponController) GetCoupons(c *gin.Context) {
	active := true
	cc.listCoupons(c, services.CouponFilter{IsActive: &active})
}

// GetHighlightedCoupons lists active, highlighted coupons with the same
// per-role annotation as GetCoupons.
func (cc *CouponController) GetHighlightedCoupons(c *gin.Context) {
	active, highlighted := true, true
	cc.listCoupons(c, services.CouponFilter{IsActive: &active, IsHighlighted: &highlighted})
}

func (cc *CouponController) listCoupons(c *gin.Context, filter services.CouponFilter) {
	coupons, err := cc.couponService.ListCoupons(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	role, _ := c.Get("user_role")
	if role == models.RoleClient {
		userID, _ := c.Get("user_id")
		user, err := cc.userService.GetUser(userID.(uint))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, services.AnnotateForLevel(coupons, user.Level))
		return
	}

	c.JSON(http.StatusOK, coupons)
}

// GetAllCoupons returns every coupon regardless of state, admin-only.
func (cc *CouponController) GetAllCoupons(c *gin.Context) {
	coupons, err := cc.couponService.ListCoupons(services.CouponFilter{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	id, err := couponID(c)
	if err != nil {
		return
	}

	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := cc.couponService.UpdateCoupon(id, services.UpdateCouponInput{
		Title:              req.Title,
		CostInPoints:       req.CostInPoints,
		DiscountBlanco:     req.DiscountBlanco,
		DiscountSilver:     req.DiscountSilver,
		DiscountGold:       req.DiscountGold,
		DiscountPlatinum:   req.DiscountPlatinum,
		IsHighlighted:      req.IsHighlighted,
		IsActive:           req.IsActive,
		ProductType:        req.ProductType,
		ProductDescription: req.ProductDescription,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	config.WSHub.BroadcastEvent(websocket.EventCouponUpdated, websocket.CouponEvent{
		CouponID: coupon.ID,
		Title:    coupon.Title,
		Action:   "updated",
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cupón actualizado",
		"coupon":  coupon,
	})
}

func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	id, err := couponID(c)
	if err != nil {
		return
	}

	if err := cc.couponService.DeleteCoupon(id); err != nil {
		respondError(c, err)
		return
	}

	config.WSHub.BroadcastEvent(websocket.EventCouponDeleted, websocket.CouponEvent{
		CouponID: id,
		Action:   "deleted",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Cupón eliminado"})
}

// RedeemCoupon exchanges the caller's points for a voucher.
func (cc *CouponController) RedeemCoupon(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req RedeemCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	redemption, err := cc.redemptionService.Redeem(userID.(uint), req.CouponID)
	if err != nil {
		respondError(c, err)
		return
	}

	config.WSHub.BroadcastEvent(websocket.EventRedemptionCreated, websocket.RedemptionEvent{
		RedemptionID: redemption.ID,
		UserID:       redemption.UserID,
		CouponID:     redemption.CouponID,
		Status:       string(redemption.Status),
		Action:       "created",
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Cupón canjeado con éxito",
		"redemption": redemption,
	})
}

// UseCoupon marks a voucher as spent at the counter.
func (cc *CouponController) UseCoupon(c *gin.Context) {
	var req UseCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	redemption, err := cc.redemptionService.Use(req.RedemptionID)
	if err != nil {
		respondError(c, err)
		return
	}

	config.WSHub.BroadcastEvent(websocket.EventRedemptionUsed, websocket.RedemptionEvent{
		RedemptionID: redemption.ID,
		UserID:       redemption.UserID,
		CouponID:     redemption.CouponID,
		CouponTitle:  redemption.Coupon.Title,
		Status:       string(redemption.Status),
		Action:       "used",
	})
	config.WSHub.BroadcastEvent(websocket.EventDashboardRefresh, websocket.DashboardRefreshEvent{
		Reason: "redemption_used",
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Cupón aplicado con éxito",
		"redemption": redemption,
	})
}

func (cc *CouponController) GetMyRedemptions(c *gin.Context) {
	userID, _ := c.Get("user_id")

	redemptions, err := cc.redemptionService.GetUserRedemptions(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, redemptions)
}

func couponID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de cupón inválido"})
		return 0, err
	}
	return uint(id), nil
}

func formInt(c *gin.Context, field string) int {
	v, _ := strconv.Atoi(c.PostForm(field))
	return v
}
