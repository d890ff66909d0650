package models

import (
	"time"
)

// Order history actions
const (
	ActionCreated      = "CREATED"
	ActionStatusChange = "STATUS_CHANGE"
	ActionPayment      = "PAYMENT"
	ActionNote         = "NOTE"
	ActionUpdated      = "UPDATED"
)

// OrderHistory is one append-only audit trail entry for an order. Rows are
// never updated or deleted once written; NotifySent is the only field with
// a permitted later mutation.
type OrderHistory struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	OrderID        uint         `gorm:"not null;index" json:"order_id"`
	Status         OrderStatus  `gorm:"not null" json:"status"`
	PreviousStatus *OrderStatus `json:"previous_status,omitempty"`
	Action         string       `gorm:"not null" json:"action"` // CREATED, STATUS_CHANGE, PAYMENT, NOTE, UPDATED
	Note           string       `gorm:"type:text" json:"note"`
	NotifySent     bool         `gorm:"not null;default:false" json:"notify_sent"`
	CreatedByID    *uint        `gorm:"index" json:"created_by_id,omitempty"`
	CreatedBy      *User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// TableName specifies the table name for the OrderHistory model
func (OrderHistory) TableName() string {
	return "order_histories"
}
