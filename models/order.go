package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the workflow state of an order
type OrderStatus string

// Order workflow states
const (
	StatusBooked    OrderStatus = "BOOKED"    // online booking, estimate only, no stock committed
	StatusPending   OrderStatus = "PENDING"   // confirmed and queued, stock committed
	StatusWashing   OrderStatus = "WASHING"
	StatusDrying    OrderStatus = "DRYING"
	StatusIroning   OrderStatus = "IRONING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusReady     OrderStatus = "READY" // ready for pickup
	StatusTaken     OrderStatus = "TAKEN" // picked up by the customer, terminal
	StatusCancelled OrderStatus = "CANCELLED" // terminal
)

// Payment statuses
const (
	PaymentUnpaid  = "UNPAID"
	PaymentPartial = "PARTIAL"
	PaymentPaid    = "PAID"
)

// statusTransitions is the single source of truth for the order state
// machine. A transition not listed here is rejected.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusBooked:    {StatusPending, StatusWashing, StatusCancelled},
	StatusPending:   {StatusWashing, StatusCancelled},
	StatusWashing:   {StatusDrying, StatusIroning, StatusCompleted, StatusCancelled},
	StatusDrying:    {StatusIroning, StatusCompleted, StatusReady, StatusCancelled},
	StatusIroning:   {StatusCompleted, StatusReady, StatusCancelled},
	StatusCompleted: {StatusReady, StatusTaken, StatusCancelled},
	StatusReady:     {StatusTaken, StatusCancelled},
	StatusTaken:     {},
	StatusCancelled: {},
}

// defaultStatusNotes are used for history entries when the caller supplies none
var defaultStatusNotes = map[OrderStatus]string{
	StatusBooked:    "Order booked",
	StatusPending:   "Order confirmed and queued",
	StatusWashing:   "Washing started",
	StatusDrying:    "Drying started",
	StatusIroning:   "Ironing started",
	StatusCompleted: "Processing completed",
	StatusReady:     "Ready for pickup",
	StatusTaken:     "Picked up by customer",
	StatusCancelled: "Order cancelled",
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// AllowedTransitions returns the set of statuses s may legally move to
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	return statusTransitions[s]
}

// CanTransitionTo reports whether moving from s to target is legal
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(statusTransitions[s]) == 0
}

// CommitsStock reports whether an order in this status has had material
// stock deducted. Cancelling an order in one of these states must restore
// the deducted stock in full.
func (s OrderStatus) CommitsStock() bool {
	switch s {
	case StatusPending, StatusWashing, StatusDrying, StatusIroning:
		return true
	}
	return false
}

// DefaultNote returns the canonical history note for entering status s
func (s OrderStatus) DefaultNote() string {
	return defaultStatusNotes[s]
}

// FinalPrice is the single authoritative price formula: total minus
// discount, floored at zero. Both the Order model and the lifecycle
// engine go through this function.
func FinalPrice(total, discount decimal.Decimal) decimal.Decimal {
	final := total.Sub(discount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// Order represents one customer laundry job: the unit of transactional
// consistency for the lifecycle engine
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TrackingCode   string          `gorm:"uniqueIndex;not null" json:"tracking_code"`
	CustomerID     uint            `gorm:"not null;index" json:"customer_id"`
	Customer       Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status         OrderStatus     `gorm:"not null;default:'BOOKED'" json:"status"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_price"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"discount_amount"`
	FinalPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"final_price"`
	PaymentStatus  string          `gorm:"not null;default:'UNPAID'" json:"payment_status"` // UNPAID, PARTIAL, PAID
	PaymentMethod  *string         `json:"payment_method,omitempty"`
	PointsEarned   int             `gorm:"not null;default:0" json:"points_earned"`
	PointsUsed     int             `gorm:"not null;default:0" json:"points_used"`
	Notes          *string         `json:"notes,omitempty"`
	PhotoS3Key     *string         `json:"photo_s3_key,omitempty"`           // intake condition photo
	PhotoURL       *string         `gorm:"-" json:"photo_url,omitempty"`     // computed, presigned URL
	CreatedByID    *uint           `gorm:"index" json:"created_by_id"`       // nil for public self-service bookings
	UpdatedByID    *uint           `gorm:"index" json:"updated_by_id"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	History        []OrderHistory  `gorm:"foreignKey:OrderID" json:"history,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// RecalculateFinalPrice refreshes FinalPrice from TotalPrice and DiscountAmount
func (o *Order) RecalculateFinalPrice() {
	o.FinalPrice = FinalPrice(o.TotalPrice, o.DiscountAmount)
}
