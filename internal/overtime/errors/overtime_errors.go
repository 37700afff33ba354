package overtimeerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrOvertimeNotFound = apperror.New(
		apperror.CodeNotFound,
		"overtime entry not found",
		http.StatusNotFound,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be greater than 0 and at most 12",
		http.StatusBadRequest,
	)
	ErrInvalidHourlyRate = apperror.New(
		apperror.CodeInvalidInput,
		"hourly rate must be greater than 0",
		http.StatusBadRequest,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found for this company",
		http.StatusNotFound,
	)
	ErrWorkerInactive = apperror.New(
		apperror.CodeInvalidState,
		"cannot record overtime for an inactive worker",
		http.StatusBadRequest,
	)
	ErrAlreadySettled = apperror.New(
		apperror.CodeConflict,
		"overtime entry is already folded into a generated payroll",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
