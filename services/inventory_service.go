package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bersihkilat/laundry-api/models"
)

// InventoryService is the stock ledger: the sole legal way to change a
// material's quantity. Every mutation locks the Material row, updates the
// quantity and appends a MaterialStockMovement inside the caller's
// transaction, so the current stock_qty always equals the stock_after of
// the material's most recent movement.
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates an InventoryService backed by db
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// lockMaterial loads a material row under FOR UPDATE within tx
func lockMaterial(tx *gorm.DB, materialID uint) (*models.Material, error) {
	var material models.Material
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&material, materialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "material", ID: materialID}
		}
		return nil, classifyDBError(err)
	}
	return &material, nil
}

// writeMovement appends one ledger row and persists the material's new quantity
func writeMovement(tx *gorm.DB, material *models.Material, movementType string, qty, before, after decimal.Decimal, orderID *uint, notes *string, actorID *uint) error {
	material.StockQty = after
	if err := tx.Model(material).Update("stock_qty", after).Error; err != nil {
		return classifyDBError(err)
	}

	movement := models.MaterialStockMovement{
		MaterialID:  material.ID,
		Type:        movementType,
		Quantity:    qty,
		StockBefore: before,
		StockAfter:  after,
		OrderID:     orderID,
		Notes:       notes,
		CreatedByID: actorID,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return classifyDBError(err)
	}
	return nil
}

// CheckAvailability reports, per insufficient material, how far current
// stock falls short of the required map. Read-only; never mutates state.
// Materials are checked in ascending id order.
func (s *InventoryService) CheckAvailability(tx *gorm.DB, required map[uint]decimal.Decimal) ([]StockShortage, error) {
	var shortages []StockShortage

	for _, materialID := range sortedMaterialIDs(required) {
		var material models.Material
		if err := tx.First(&material, materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "material", ID: materialID}
			}
			return nil, classifyDBError(err)
		}

		need := required[materialID]
		if material.StockQty.LessThan(need) {
			shortages = append(shortages, StockShortage{
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Required:     need,
				Available:    material.StockQty,
				Shortfall:    need.Sub(material.StockQty),
			})
		}
	}

	return shortages, nil
}

// Deduct atomically decrements a material's stock and appends an OUT
// movement referencing the consuming order. Fails with
// InsufficientStockError when current stock cannot cover qty; the caller's
// transaction must then roll back so no partial deduction survives.
func (s *InventoryService) Deduct(tx *gorm.DB, materialID uint, qty decimal.Decimal, orderID uint, actorID *uint) error {
	if !qty.IsPositive() {
		return &ValidationError{Field: "qty", Message: "deduction quantity must be positive"}
	}

	material, err := lockMaterial(tx, materialID)
	if err != nil {
		return err
	}

	if material.StockQty.LessThan(qty) {
		return &InsufficientStockError{Shortages: []StockShortage{{
			MaterialID:   material.ID,
			MaterialName: material.Name,
			Required:     qty,
			Available:    material.StockQty,
			Shortfall:    qty.Sub(material.StockQty),
		}}}
	}

	before := material.StockQty
	return writeMovement(tx, material, models.MovementOut, qty, before, before.Sub(qty), &orderID, nil, actorID)
}

// DeductAll deducts every entry of the required map in ascending material
// id order. Stable ordering keeps lock acquisition consistent across
// concurrent orders with overlapping material sets.
func (s *InventoryService) DeductAll(tx *gorm.DB, required map[uint]decimal.Decimal, orderID uint, actorID *uint) error {
	for _, materialID := range sortedMaterialIDs(required) {
		if err := s.Deduct(tx, materialID, required[materialID], orderID, actorID); err != nil {
			return err
		}
	}
	return nil
}

// RestoreForOrder reverses every OUT movement previously recorded against
// the order: one RETURN movement per OUT, same quantity. Used only for
// cancellation, never as ordinary restock.
func (s *InventoryService) RestoreForOrder(tx *gorm.DB, orderID uint, actorID *uint) error {
	var outs []models.MaterialStockMovement
	err := tx.Where("order_id = ? AND type = ?", orderID, models.MovementOut).
		Order("material_id asc").
		Find(&outs).Error
	if err != nil {
		return classifyDBError(err)
	}

	for _, out := range outs {
		material, err := lockMaterial(tx, out.MaterialID)
		if err != nil {
			return err
		}

		before := material.StockQty
		notes := "Stock returned from cancelled order"
		err = writeMovement(tx, material, models.MovementReturn, out.Quantity, before, before.Add(out.Quantity), &orderID, &notes, actorID)
		if err != nil {
			return err
		}
	}
	return nil
}

// AddStock is the manual restock operation: increments stock and appends
// an IN movement. Runs in its own transaction.
func (s *InventoryService) AddStock(materialID uint, qty decimal.Decimal, notes *string, actorID *uint) (*models.Material, error) {
	if !qty.IsPositive() {
		return nil, &ValidationError{Field: "qty", Message: "restock quantity must be positive"}
	}

	var material *models.Material
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		material, err = lockMaterial(tx, materialID)
		if err != nil {
			return err
		}
		before := material.StockQty
		return writeMovement(tx, material, models.MovementIn, qty, before, before.Add(qty), nil, notes, actorID)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// AdjustStock is the manual correction operation: sets stock to an
// absolute non-negative quantity and appends an ADJUSTMENT movement whose
// quantity is the absolute delta. Runs in its own transaction.
func (s *InventoryService) AdjustStock(materialID uint, newQty decimal.Decimal, notes *string, actorID *uint) (*models.Material, error) {
	if newQty.IsNegative() {
		return nil, &ValidationError{Field: "new_qty", Message: "adjusted quantity cannot be negative"}
	}

	var material *models.Material
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		material, err = lockMaterial(tx, materialID)
		if err != nil {
			return err
		}
		before := material.StockQty
		delta := newQty.Sub(before).Abs()
		return writeMovement(tx, material, models.MovementAdjustment, delta, before, newQty, nil, notes, actorID)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// LowStockMaterials returns active materials at or below their alert threshold
func (s *InventoryService) LowStockMaterials() ([]models.Material, error) {
	var materials []models.Material
	err := s.db.Where("is_active = ? AND stock_qty <= min_stock_alert", true).
		Order("id asc").
		Find(&materials).Error
	if err != nil {
		return nil, classifyDBError(err)
	}
	return materials, nil
}

func sortedMaterialIDs(required map[uint]decimal.Decimal) []uint {
	ids := make([]uint, 0, len(required))
	for id := range required {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
