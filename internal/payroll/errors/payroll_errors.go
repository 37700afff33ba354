package payrollerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidDaysWorked = apperror.New(
		apperror.CodeInvalidInput,
		"days_worked must be between 0 and 31",
		http.StatusBadRequest,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found for this company",
		http.StatusNotFound,
	)
	ErrWorkerInactive = apperror.New(
		apperror.CodeInvalidState,
		"cannot generate payroll for an inactive worker",
		http.StatusBadRequest,
	)
	ErrRateOutOfPolicy = apperror.New(
		apperror.CodeInvalidInput,
		"worker daily rate is outside the allowed policy range",
		http.StatusBadRequest,
	)
	ErrPeriodAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a non-cancelled payroll already exists for this worker and period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll status transition",
		http.StatusBadRequest,
	)
)
