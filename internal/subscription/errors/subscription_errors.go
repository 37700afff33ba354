package subscriptionerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrSubscriptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"subscription not found for this company",
		http.StatusNotFound,
	)
	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"duration_months must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrAlreadySubscribed = apperror.New(
		apperror.CodeConflict,
		"company already has a subscription",
		http.StatusConflict,
	)
)
