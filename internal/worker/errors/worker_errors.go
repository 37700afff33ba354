package workererrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found",
		http.StatusNotFound,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrInvalidDailyRate = apperror.New(
		apperror.CodeInvalidInput,
		"daily_rate must be between 1000 and 1000000",
		http.StatusBadRequest,
	)
	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid join_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrWorkerInactive = apperror.New(
		apperror.CodeInvalidState,
		"worker is no longer active",
		http.StatusBadRequest,
	)
	ErrPhoneAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"phone number already registered for this company",
		http.StatusConflict,
	)
)
