package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/dto"
)

// respondSuccess writes the uniform success envelope.
func respondSuccess(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, dto.NewSuccessResponse(statusCode, data, message))
}

// respondError maps any error to the uniform failure envelope. Errors that
// are not APIErrors come back as a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	apiErr := apperrors.From(err)
	c.JSON(apiErr.StatusCode, dto.NewErrorResponse(apiErr.StatusCode, apiErr.Message, apiErr.Details))
}

// respondBindingError turns a ShouldBindJSON failure into a 400 envelope,
// unpacking validator field errors into the detail list when present.
func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]string, len(validationErrs))
		for i, fieldErr := range validationErrs {
			details[i] = fmt.Sprintf("field %s failed on the '%s' rule", strings.ToLower(fieldErr.Field()), fieldErr.Tag())
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "all fields are required", details))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", nil))
}
