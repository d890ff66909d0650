package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	StatusBooked, StatusPending, StatusWashing, StatusDrying,
	StatusIroning, StatusCompleted, StatusReady, StatusTaken, StatusCancelled,
}

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
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

	// Check every (from, to) pair against the expected table, so an
	// accidentally added or removed edge fails loudly
	for _, from := range allStatuses {
		allowedSet := make(map[OrderStatus]bool)
		for _, to := range allowed[from] {
			allowedSet[to] = true
		}

		for _, to := range allStatuses {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "transition %s -> %s", from, to)
		}

		assert.ElementsMatch(t, allowed[from], from.AllowedTransitions(), "allowed transitions of %s", from)
	}
}

func TestStatusSelfTransitionsRejected(t *testing.T) {
	for _, s := range allStatuses {
		assert.False(t, s.CanTransitionTo(s), "self transition %s -> %s must be rejected", s, s)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.IsValid(), "status %s", s)
	}
	assert.False(t, OrderStatus("DELIVERED").IsValid())
	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("booked").IsValid(), "statuses are case sensitive")
}

func TestStatusIsTerminal(t *testing.T) {
	for _, s := range allStatuses {
		expected := s == StatusTaken || s == StatusCancelled
		assert.Equal(t, expected, s.IsTerminal(), "status %s", s)
	}
	assert.False(t, OrderStatus("DELIVERED").IsTerminal(), "unknown statuses are not terminal")
}

func TestStatusCommitsStock(t *testing.T) {
	committed := map[OrderStatus]bool{
		StatusPending: true,
		StatusWashing: true,
		StatusDrying:  true,
		StatusIroning: true,
	}
	for _, s := range allStatuses {
		assert.Equal(t, committed[s], s.CommitsStock(), "status %s", s)
	}
}

func TestStatusDefaultNote(t *testing.T) {
	for _, s := range allStatuses {
		assert.NotEmpty(t, s.DefaultNote(), "status %s has no default note", s)
	}
	assert.Equal(t, "Picked up by customer", StatusTaken.DefaultNote())
	assert.Equal(t, "Order cancelled", StatusCancelled.DefaultNote())
}

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		discount string
		expected string
	}{
		{"no discount", "50000", "0", "50000"},
		{"partial discount", "50000", "5000", "45000"},
		{"discount equals total", "50000", "50000", "0"},
		{"discount exceeds total floors at zero", "50000", "60000", "0"},
		{"zero total", "0", "0", "0"},
		{"fractional amounts", "12500.50", "500.50", "12000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, _ := decimal.NewFromString(tt.total)
			discount, _ := decimal.NewFromString(tt.discount)
			expected, _ := decimal.NewFromString(tt.expected)

			got := FinalPrice(total, discount)
			assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
		})
	}
}

func TestRecalculateFinalPrice(t *testing.T) {
	order := Order{
		TotalPrice:     decimal.NewFromInt(80000),
		DiscountAmount: decimal.NewFromInt(10000),
	}
	order.RecalculateFinalPrice()
	assert.True(t, decimal.NewFromInt(70000).Equal(order.FinalPrice))
}

func TestMaterialIsLowStock(t *testing.T) {
	tests := []struct {
		name     string
		stock    int64
		alert    int64
		expected bool
	}{
		{"above threshold", 5000, 1000, false},
		{"at threshold", 1000, 1000, true},
		{"below threshold", 500, 1000, true},
		{"zero stock zero alert", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Material{
				StockQty:      decimal.NewFromInt(tt.stock),
				MinStockAlert: decimal.NewFromInt(tt.alert),
			}
			assert.Equal(t, tt.expected, m.IsLowStock())
		})
	}
}

func TestMovementIsInbound(t *testing.T) {
	assert.True(t, (&MaterialStockMovement{Type: MovementIn}).IsInbound())
	assert.True(t, (&MaterialStockMovement{Type: MovementReturn}).IsInbound())
	assert.False(t, (&MaterialStockMovement{Type: MovementOut}).IsInbound())
	assert.False(t, (&MaterialStockMovement{Type: MovementAdjustment}).IsInbound())
}
