package materialerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrMaterialNotFound = apperror.New(
		apperror.CodeNotFound,
		"material not found",
		http.StatusNotFound,
	)
	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"quantity must be greater than 0",
		http.StatusBadRequest,
	)
	ErrInsufficientStock = apperror.New(
		apperror.CodeInvalidState,
		"stock-out exceeds available stock",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidUnitPrice = apperror.New(
		apperror.CodeInvalidInput,
		"unit price must not be negative",
		http.StatusBadRequest,
	)
)
