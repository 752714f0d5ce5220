package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "marketplace/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MessageBody is the shape of every non-collection reply. Collections are
// returned as bare JSON arrays and carry no message.
type MessageBody struct {
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func JSON(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Message(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, MessageBody{
		Message: message,
		Data:    data,
	})
}

func Created(c echo.Context, message string, data interface{}) error {
	return Message(c, http.StatusCreated, message, data)
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, MessageBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, _ := httpErr.Message.(string)
		mapped := apperrors.FromStatus(httpErr.Code, msg)
		return c.JSON(httpErr.Code, MessageBody{
			Code:    mapped.Code,
			Message: mapped.Message,
		})
	}

	return c.JSON(http.StatusInternalServerError, MessageBody{
		Code:    apperrors.CodeInternal,
		Message: "An unexpected error occurred",
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := err.Field()
		param := err.Param()

		var message string
		switch err.Tag() {
		case "required":
			message = field + " is required"
		case "min", "gte":
			message = field + " must be at least " + param
		case "max", "lte":
			message = field + " must be at most " + param
		case "gt":
			message = field + " must be greater than " + param
		case "oneof":
			message = field + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
		case "email":
			message = field + " must be a valid email address"
		default:
			message = field + " is invalid"
		}

		return c.JSON(http.StatusBadRequest, MessageBody{
			Code:    apperrors.CodeValidation,
			Message: message,
		})
	}

	return c.JSON(http.StatusBadRequest, MessageBody{
		Code:    apperrors.CodeValidation,
		Message: "Invalid input data",
	})
}

// ExtractMessage pulls the optional top-level message out of a raw reply.
// Arrays, scalars and malformed bodies yield "".
func ExtractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return ""
	}
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Message
}
