package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bersihkilat/laundry-api/models"
)

// OrderService is the order lifecycle engine: it validates and executes
// state transitions and coordinates the BOM resolver, the stock ledger,
// the audit trail and the loyalty ledger. Every mutating entry point runs
// as a single database transaction.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
}

// NewOrderService creates an OrderService backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, inventory: NewInventoryService(db)}
}

// BookingInput is the validated input for a public or staff-taken booking
type BookingInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
	ServiceID       uint
	EstimatedQty    decimal.Decimal
	IsExpress       bool
	Notes           *string
}

// ItemInput is one finalized order line
type ItemInput struct {
	ServiceID uint
	Qty       decimal.Decimal
	IsExpress bool
}

// ConfirmInput carries the finalized items and payment details used when a
// booking is confirmed in the shop
type ConfirmInput struct {
	Items          []ItemInput
	DiscountAmount decimal.Decimal
	PointsToUse    int
	PaymentStatus  string
	PaymentMethod  *string
}

// WalkInInput is the input for an order taken in person with known final
// weights and quantities
type WalkInInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
	Items           []ItemInput
	DiscountAmount  decimal.Decimal
	PointsToUse     int
	PaymentStatus   string
	PaymentMethod   *string
	Notes           *string
}

// CreateBooking registers a customer's intent: finds or creates the
// customer by phone, prices an estimate with the same formula used at
// confirmation, and creates a BOOKED order with one estimate item. No
// stock is touched; booking is a soft reservation, not a material
// commitment.
func (s *OrderService) CreateBooking(input BookingInput, actorID *uint) (*models.Order, error) {
	if input.CustomerPhone == "" {
		return nil, &ValidationError{Field: "customer_phone", Message: "phone is required"}
	}
	if !input.EstimatedQty.IsPositive() {
		return nil, &ValidationError{Field: "estimated_qty", Message: "estimated quantity must be positive"}
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		service, err := findActiveService(tx, input.ServiceID)
		if err != nil {
			return err
		}

		customer, err := findOrCreateCustomer(tx, input.CustomerName, input.CustomerPhone, input.CustomerAddress)
		if err != nil {
			return err
		}

		code, err := GenerateTrackingCode(tx, true)
		if err != nil {
			return err
		}

		estimate := CalculatePrice(service, input.EstimatedQty, input.IsExpress)
		order = &models.Order{
			TrackingCode:   code,
			CustomerID:     customer.ID,
			Status:         models.StatusBooked,
			TotalPrice:     estimate,
			DiscountAmount: decimal.Zero,
			FinalPrice:     models.FinalPrice(estimate, decimal.Zero),
			PaymentStatus:  models.PaymentUnpaid,
			Notes:          input.Notes,
			CreatedByID:    actorID,
		}
		if err := tx.Create(order).Error; err != nil {
			return classifyDBError(err)
		}

		item := models.OrderItem{
			OrderID:           order.ID,
			ServiceID:         service.ID,
			Qty:               input.EstimatedQty,
			PriceAtMoment:     service.Price,
			IsExpress:         input.IsExpress,
			ExpressMultiplier: service.ExpressMultiplier,
			Subtotal:          estimate,
		}
		if err := tx.Create(&item).Error; err != nil {
			return classifyDBError(err)
		}

		return writeHistory(tx, order.ID, models.ActionCreated, models.StatusBooked, nil, "Order booked, estimate pending confirmation", actorID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(order.ID)
}

// ConfirmBooking finalizes a BOOKED order: the estimate item is discarded
// and replaced wholesale with the measured items, the price is recomputed,
// requested loyalty points are applied as a discount, and stock for the
// full bill of materials is deducted. Either everything commits or the
// order stays BOOKED with stock untouched.
func (s *OrderService) ConfirmBooking(orderID uint, input ConfirmInput, actorID *uint) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	if err := validatePayment(input.PaymentStatus); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != models.StatusBooked {
			return &InvalidStateError{Operation: "confirm booking", Required: models.StatusBooked, Current: order.Status}
		}

		// The estimate items are replaced wholesale with the finalized list
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return classifyDBError(err)
		}

		total, err := createItems(tx, order.ID, input.Items)
		if err != nil {
			return err
		}

		pointsSpent, err := SpendPoints(tx, order.CustomerID, input.PointsToUse)
		if err != nil {
			return err
		}
		discount := input.DiscountAmount.Add(PointRedeemValue.Mul(decimal.NewFromInt(int64(pointsSpent))))

		if err := s.commitStock(tx, input.Items, order.ID, actorID); err != nil {
			return err
		}

		prev := order.Status
		updates := map[string]any{
			"status":          models.StatusPending,
			"total_price":     total,
			"discount_amount": discount,
			"final_price":     models.FinalPrice(total, discount),
			"points_used":     pointsSpent,
			"payment_status":  input.PaymentStatus,
			"payment_method":  input.PaymentMethod,
			"updated_by_id":   actorID,
		}
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return classifyDBError(err)
		}

		return writeHistory(tx, order.ID, models.ActionStatusChange, models.StatusPending, &prev, "Booking confirmed with final items", actorID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// CreateWalkInOrder takes an in-person order whose weights and quantities
// are already final: same pricing and stock-deduction path as
// confirmation, but the order starts directly at PENDING with no prior
// BOOKED record.
func (s *OrderService) CreateWalkInOrder(input WalkInInput, actorID *uint) (*models.Order, error) {
	if input.CustomerPhone == "" {
		return nil, &ValidationError{Field: "customer_phone", Message: "phone is required"}
	}
	if len(input.Items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	if err := validatePayment(input.PaymentStatus); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := findOrCreateCustomer(tx, input.CustomerName, input.CustomerPhone, input.CustomerAddress)
		if err != nil {
			return err
		}

		code, err := GenerateTrackingCode(tx, false)
		if err != nil {
			return err
		}

		pointsSpent, err := SpendPoints(tx, customer.ID, input.PointsToUse)
		if err != nil {
			return err
		}

		order = &models.Order{
			TrackingCode:  code,
			CustomerID:    customer.ID,
			Status:        models.StatusPending,
			PaymentStatus: input.PaymentStatus,
			PaymentMethod: input.PaymentMethod,
			PointsUsed:    pointsSpent,
			Notes:         input.Notes,
			CreatedByID:   actorID,
		}
		if err := tx.Create(order).Error; err != nil {
			return classifyDBError(err)
		}

		total, err := createItems(tx, order.ID, input.Items)
		if err != nil {
			return err
		}
		discount := input.DiscountAmount.Add(PointRedeemValue.Mul(decimal.NewFromInt(int64(pointsSpent))))

		if err := s.commitStock(tx, input.Items, order.ID, actorID); err != nil {
			return err
		}

		updates := map[string]any{
			"total_price":     total,
			"discount_amount": discount,
			"final_price":     models.FinalPrice(total, discount),
		}
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return classifyDBError(err)
		}

		return writeHistory(tx, order.ID, models.ActionCreated, models.StatusPending, nil, "Walk-in order created", actorID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(order.ID)
}

// UpdateStatus moves an order through the state machine. A cancellation
// from a stock-committed status restores every deducted material in full;
// reaching TAKEN accrues loyalty points exactly once. The order row is
// locked and the current status re-read inside the transaction, so a
// concurrent transition cannot validate against a stale status or accrue
// twice.
func (s *OrderService) UpdateStatus(orderID uint, newStatus models.OrderStatus, note *string, actorID *uint) (*models.Order, error) {
	if !newStatus.IsValid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", newStatus)}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(newStatus) {
			return &InvalidTransitionError{
				Current:   order.Status,
				Requested: newStatus,
				Allowed:   order.Status.AllowedTransitions(),
			}
		}
		prev := order.Status

		if newStatus == models.StatusCancelled && prev.CommitsStock() {
			if err := s.inventory.RestoreForOrder(tx, order.ID, actorID); err != nil {
				return err
			}
		}

		updates := map[string]any{
			"status":        newStatus,
			"updated_by_id": actorID,
		}
		if newStatus == models.StatusTaken {
			// prev can never be TAKEN here: the transition table has no
			// edge out of a terminal status, and prev was read under lock.
			earned, err := AccruePoints(tx, order.CustomerID, order)
			if err != nil {
				return err
			}
			updates["points_earned"] = earned
		}

		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return classifyDBError(err)
		}

		historyNote := newStatus.DefaultNote()
		if note != nil && *note != "" {
			historyNote = *note
		}
		return writeHistory(tx, order.ID, models.ActionStatusChange, newStatus, &prev, historyNote, actorID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// UpdatePayment records a payment status change. Independent of the
// status state machine; touches neither stock nor loyalty.
func (s *OrderService) UpdatePayment(orderID uint, paymentStatus string, method *string, actorID *uint) (*models.Order, error) {
	if err := validatePayment(paymentStatus); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"payment_status": paymentStatus,
			"updated_by_id":  actorID,
		}
		if method != nil {
			updates["payment_method"] = method
		}
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return classifyDBError(err)
		}

		note := fmt.Sprintf("Payment status changed to %s", paymentStatus)
		if method != nil {
			note = fmt.Sprintf("%s (%s)", note, *method)
		}
		return writeHistory(tx, order.ID, models.ActionPayment, order.Status, nil, note, actorID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// AddNote appends a free-text NOTE entry to the order's audit trail
func (s *OrderService) AddNote(orderID uint, note string, actorID *uint) error {
	if note == "" {
		return &ValidationError{Field: "note", Message: "note cannot be empty"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		return writeHistory(tx, order.ID, models.ActionNote, order.Status, nil, note, actorID)
	})
}

// MarkHistoryNotified flips the notification flag on a history entry.
// This is the only mutation the audit trail permits after insert.
func (s *OrderService) MarkHistoryNotified(historyID uint) error {
	result := s.db.Model(&models.OrderHistory{}).Where("id = ?", historyID).Update("notify_sent", true)
	if result.Error != nil {
		return classifyDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "order history entry", ID: historyID}
	}
	return nil
}

// FindByTrackingCode is the public read-only lookup: the order with its
// items and chronologically ordered history. No mutation path is exposed
// through it.
func (s *OrderService) FindByTrackingCode(code string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").
		Preload("Items.Service").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_histories.created_at asc, order_histories.id asc")
		}).
		Where("tracking_code = ?", code).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: code}
		}
		return nil, classifyDBError(err)
	}
	return &order, nil
}

// GetOrder loads an order with its customer, items and ordered history
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").
		Preload("Items.Service").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_histories.created_at asc, order_histories.id asc")
		}).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, classifyDBError(err)
	}
	return &order, nil
}

// ListOrders returns orders newest-first, optionally filtered by status
func (s *OrderService) ListOrders(status *models.OrderStatus) ([]models.Order, error) {
	query := s.db.Preload("Customer").Order("created_at desc, id desc")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return orders, nil
}

// commitStock resolves the bill of materials for the items, pre-flights
// availability, and deducts every resolved material in ascending id
// order. Any shortage aborts with the full shortage detail and rolls the
// enclosing transaction back.
func (s *OrderService) commitStock(tx *gorm.DB, items []ItemInput, orderID uint, actorID *uint) error {
	pairs := make([]ServiceQuantity, len(items))
	for i, item := range items {
		pairs[i] = ServiceQuantity{ServiceID: item.ServiceID, Qty: item.Qty}
	}

	required, err := ResolveMaterials(tx, pairs)
	if err != nil {
		return err
	}

	shortages, err := s.inventory.CheckAvailability(tx, required)
	if err != nil {
		return err
	}
	if len(shortages) > 0 {
		return &InsufficientStockError{Shortages: shortages}
	}

	return s.inventory.DeductAll(tx, required, orderID, actorID)
}

// createItems validates and inserts the order lines, snapshotting each
// service's current price, and returns the summed subtotals
func createItems(tx *gorm.DB, orderID uint, items []ItemInput) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, input := range items {
		if !input.Qty.IsPositive() {
			return decimal.Zero, &ValidationError{Field: "qty", Message: "item quantity must be positive"}
		}

		service, err := findActiveService(tx, input.ServiceID)
		if err != nil {
			return decimal.Zero, err
		}

		subtotal := CalculatePrice(service, input.Qty, input.IsExpress)
		item := models.OrderItem{
			OrderID:           orderID,
			ServiceID:         service.ID,
			Qty:               input.Qty,
			PriceAtMoment:     service.Price,
			IsExpress:         input.IsExpress,
			ExpressMultiplier: service.ExpressMultiplier,
			Subtotal:          subtotal,
		}
		if err := tx.Create(&item).Error; err != nil {
			return decimal.Zero, classifyDBError(err)
		}
		total = total.Add(subtotal)
	}
	return total, nil
}

func findActiveService(tx *gorm.DB, serviceID uint) (*models.Service, error) {
	var service models.Service
	if err := tx.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "service", ID: serviceID}
		}
		return nil, classifyDBError(err)
	}
	if !service.IsActive {
		return nil, &ValidationError{Field: "service_id", Message: fmt.Sprintf("service %d is not active", serviceID)}
	}
	return &service, nil
}

func findOrCreateCustomer(tx *gorm.DB, name, phone string, address *string) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("phone = ?", phone).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyDBError(err)
	}

	if name == "" {
		return nil, &ValidationError{Field: "customer_name", Message: "name is required for a new customer"}
	}
	customer = models.Customer{Name: name, Phone: phone, Address: address}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return &customer, nil
}

// lockOrder loads an order row under FOR UPDATE within tx, giving the
// caller the authoritative current status for transition validation
func lockOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, classifyDBError(err)
	}
	return &order, nil
}

func writeHistory(tx *gorm.DB, orderID uint, action string, status models.OrderStatus, previous *models.OrderStatus, note string, actorID *uint) error {
	entry := models.OrderHistory{
		OrderID:        orderID,
		Status:         status,
		PreviousStatus: previous,
		Action:         action,
		Note:           note,
		CreatedByID:    actorID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return classifyDBError(err)
	}
	return nil
}

func validatePayment(status string) error {
	switch status {
	case models.PaymentUnpaid, models.PaymentPartial, models.PaymentPaid:
		return nil
	}
	return &ValidationError{Field: "payment_status", Message: fmt.Sprintf("unknown payment status %q", status)}
}
