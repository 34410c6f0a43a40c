package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"pharmapos/internal/apierror"
	"pharmapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
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

	// Report the json wire name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
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
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			c.JSON(http.StatusBadRequest, apierror.NewField("validation failed on '"+fe.Tag()+"'", fe.Field()))
			return false
		}
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return false
	}
	return true
}

// respondServiceError maps typed service errors onto the wire envelope:
// validation 400, not-found 404, conflicts 409, bad credentials 401,
// anything unrecognized 500 with the cause hidden.
func respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, apierror.NewField(verr.Message, verr.Field))
		return
	}
	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, apierror.NewField(cerr.Message, cerr.Field))
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("record not found"))
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, apierror.New("invalid credentials"))
		return
	}
	log.Error().
		Str("path", c.FullPath()).
		Str("method", c.Request.Method).
		Err(err).
		Msg("unhandled service error")
	c.JSON(http.StatusInternalServerError, apierror.NewServer("internal server error", nil))
}
