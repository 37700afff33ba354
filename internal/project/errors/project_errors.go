package projecterrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrInvalidBudget = apperror.New(
		apperror.CodeInvalidInput,
		"budget must be greater than 0",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be PLANNING, ONGOING, COMPLETED or ON_HOLD",
		http.StatusBadRequest,
	)
)
