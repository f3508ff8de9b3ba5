package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/wirunw/pms2025/internal/apierror"
	"github.com/wirunw/pms2025/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
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

// respondError maps service-level error types onto the API error envelope.
func respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	var stockErr *service.InsufficientStockError
	var periodErr *service.InvalidPeriodError

	switch {
	case errors.As(err, &vErr):
		if len(vErr.Fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(vErr.Fields))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.WithKind(apierror.KindValidation, vErr.Detail))
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, apierror.WithKind(apierror.KindInsufficientStock, stockErr.Error()))
	case errors.As(err, &periodErr):
		c.JSON(http.StatusBadRequest, apierror.WithKind(apierror.KindInvalidPeriod, periodErr.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.WithKind(apierror.KindNotFound, "resource not found"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New("invalid credentials"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.WithKind(apierror.KindInternal, "internal server error"))
	}
}
