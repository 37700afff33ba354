package kasbonerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrKasbonNotFound = apperror.New(
		apperror.CodeNotFound,
		"kasbon not found",
		http.StatusNotFound,
	)
	ErrAmountBelowMinimum = apperror.New(
		apperror.CodeInvalidInput,
		"kasbon amount is below the minimum threshold",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"kasbon date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found for this company",
		http.StatusNotFound,
	)
	ErrWorkerInactive = apperror.New(
		apperror.CodeInvalidState,
		"cannot submit kasbon for an inactive worker",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"kasbon status transition not allowed",
		http.StatusUnprocessableEntity,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required to reject a kasbon",
		http.StatusBadRequest,
	)
)
