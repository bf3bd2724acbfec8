package handler

import (
	"net/http"

	"ventapos/internal/dto"
	"ventapos/internal/middleware"
	"ventapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// CreateExpense godoc
// @Summary Register an operating expense
// @Description Records the expense and posts its EGRESO movement against the open session in one transaction.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateExpenseRequest true "Expense detail"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/expenses [post]
func (h *ExpensesHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
