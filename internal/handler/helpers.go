package handler

import (
	"errors"
	"net/http"
	"reflect"

	"ventapos/internal/apierror"
	"ventapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Not-found conditions are 404, state conflicts 409, business-rule
// rejections 422; anything unrecognized is a 500 without internals leaked.
func respondServiceError(c *gin.Context, err error) {
	var (
		outOfStock     *service.OutOfStockError
		creditLimit    *service.CreditLimitExceededError
		exceedsTotal   *service.PaymentExceedsTotalError
		exceedsBalance *service.PaymentExceedsBalanceError
	)
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNoOpenSession),
		errors.Is(err, service.ErrSessionAlreadyOpen),
		errors.Is(err, service.ErrSessionClosed),
		errors.Is(err, service.ErrSaleAlreadyPaid),
		errors.Is(err, service.ErrSaleAnnulled):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProductInactive),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidTenderAmount),
		errors.Is(err, service.ErrCustomerRequired),
		errors.Is(err, service.ErrCreditTenderNotAllowed),
		errors.As(err, &outOfStock),
		errors.As(err, &creditLimit),
		errors.As(err, &exceedsTotal),
		errors.As(err, &exceedsBalance):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
