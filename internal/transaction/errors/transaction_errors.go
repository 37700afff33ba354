package transactionerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrTransactionNotFound = apperror.New(
		apperror.CodeNotFound,
		"transaction not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than 0",
		http.StatusBadRequest,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be INCOME or EXPENSE",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be COMPLETED, PENDING or CANCELLED",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found for this company",
		http.StatusNotFound,
	)
)
