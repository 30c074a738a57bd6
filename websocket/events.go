package websocket

// Event types for WebSocket messages
const (
	// Ledger events
	EventPurchaseRecorded = "purchase:recorded"

	// Redemption events
	EventRedemptionCreated = "redemption:created"
	EventRedemptionUsed    = "redemption:used"

	// Catalog events
	EventCouponCreated = "coupon:created"
	EventCouponUpdated = "coupon:updated"
	EventCouponDeleted = "coupon:deleted"

	// General events
	EventDashboardRefresh = "dashboard:refresh"
)

// PurchaseEvent notifies dashboards that a purchase was recorded and
// points were assigned.
type PurchaseEvent struct {
	PurchaseID     uint    `json:"purchase_id"`
	UserID         uint    `json:"user_id"`
	AmountInEuros  float64 `json:"amount_in_euros"`
	PointsAssigned int     `json:"points_assigned"`
	UserPoints     int     `json:"user_points"`
	UserLevel      string  `json:"user_level"`
}

// RedemptionEvent covers voucher creation and usage.
type RedemptionEvent struct {
	RedemptionID uint   `json:"redemption_id"`
	UserID       uint   `json:"user_id"`
	CouponID     uint   `json:"coupon_id"`
	CouponTitle  string `json:"coupon_title"`
	Status       string `json:"status"`
	Action       string `json:"action"` // created, used
}

// CouponEvent signals catalog changes.
type CouponEvent struct {
	CouponID uint   `json:"coupon_id"`
	Title    string `json:"title"`
	Action   string `json:"action"` // created, updated, deleted
}

// DashboardRefreshEvent tells open dashboards to re-fetch their counters.
type DashboardRefreshEvent struct {
	Reason string `json:"reason"` // purchase, redemption_used
}
