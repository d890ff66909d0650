package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/models"
)

// ValidationError reports malformed input: the caller's fault, never retried
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing referenced entity
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// InvalidTransitionError reports a status change outside the transition
// table. Allowed carries the legal next statuses for UI feedback.
type InvalidTransitionError struct {
	Current   models.OrderStatus
	Requested models.OrderStatus
	Allowed   []models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}
	return fmt.Sprintf("cannot transition order from %s to %s (allowed: %s)",
		e.Current, e.Requested, strings.Join(allowed, ", "))
}

// InvalidStateError reports an operation invoked while the order is not in
// the state the operation requires
type InvalidStateError struct {
	Operation string
	Current   models.OrderStatus
	Required  models.OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s requires order status %s, current status is %s",
		e.Operation, e.Required, e.Current)
}

// StockShortage describes one material that cannot cover its required quantity
type StockShortage struct {
	MaterialID   uint            `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// InsufficientStockError reports which materials are short and by how
// much. The triggering operation is fully rolled back.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("%s (need %s, have %s)", s.MaterialName, s.Required, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// LockTimeoutError wraps a row-lock wait timeout. Retryable: the caller
// may repeat the whole request.
type LockTimeoutError struct {
	Err error
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("lock wait timed out: %v", e.Err)
}

func (e *LockTimeoutError) Unwrap() error {
	return e.Err
}

// classifyDBError maps driver-level errors onto the service taxonomy.
// Postgres 55P03 is lock_not_available (NOWAIT / lock_timeout exceeded).
func classifyDBError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "55P03" {
		return &LockTimeoutError{Err: err}
	}
	return err
}
