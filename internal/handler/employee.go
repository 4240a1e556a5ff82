package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Staff manages employee accounts.
type Staff interface {
	ListEmployees(ctx context.Context, sess auth.Session) ([]model.Account, error)
	CreateEmployee(ctx context.Context, sess auth.Session, in service.AccountInput) (model.Account, error)
	DeleteEmployee(ctx context.Context, sess auth.Session, id uint64) error
}

// EmployeeHandler serves the admin-only /api/employee routes.
type EmployeeHandler struct {
	Staff Staff
}

func NewEmployeeHandler(s Staff) *EmployeeHandler { return &EmployeeHandler{Staff: s} }

// List returns every employee.
func (h *EmployeeHandler) List(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	accounts, err := h.Staff.ListEmployees(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Create adds an employee account.
func (h *EmployeeHandler) Create(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	var req accountReq
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.Staff.CreateEmployee(c.Request().Context(), sess, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Delete removes an employee.  Ids of other roles answer 404.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Staff.DeleteEmployee(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Employee deleted successfully"})
}
