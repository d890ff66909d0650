package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateEmployeeRequest represents the request body for creating an employee
type CreateEmployeeRequest struct {
	Name          string          `json:"name" binding:"required"`
	Phone         string          `json:"phone" binding:"required"`
	Position      string          `json:"position" binding:"required"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	HiredAt       *time.Time      `json:"hired_at"`
}

// UpdateEmployeeRequest represents the request body for updating an employee
type UpdateEmployeeRequest struct {
	Name          *string          `json:"name"`
	Phone         *string          `json:"phone"`
	Position      *string          `json:"position"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary"`
	IsActive      *bool            `json:"is_active"`
}

// ListEmployees handles GET /api/v1/employees
func ListEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := config.GetDB().Order("id asc").Find(&employees).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employees,
	})
}

// CreateEmployee handles POST /api/v1/employees
func CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.MonthlySalary.IsNegative() {
		respondError(c, &services.ValidationError{Field: "monthly_salary", Message: "salary cannot be negative"})
		return
	}

	hiredAt := time.Now()
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}

	employee := models.Employee{
		Name:          req.Name,
		Phone:         req.Phone,
		Position:      req.Position,
		MonthlySalary: req.MonthlySalary,
		HiredAt:       hiredAt,
		IsActive:      true,
	}
	if err := config.GetDB().Create(&employee).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    employee,
	})
}

// UpdateEmployee handles PATCH /api/v1/employees/:id
func UpdateEmployee(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	var employee models.Employee
	if err := db.First(&employee, employeeID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "employee", ID: employeeID})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.MonthlySalary != nil {
		updates["monthly_salary"] = *req.MonthlySalary
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := db.Model(&employee).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employee,
	})
}

// DeleteEmployee handles DELETE /api/v1/employees/:id (soft delete)
func DeleteEmployee(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.GetDB().Delete(&models.Employee{}, employeeID)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, &services.NotFoundError{Resource: "employee", ID: employeeID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee deleted",
	})
}
