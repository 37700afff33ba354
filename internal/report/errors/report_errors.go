package reporterrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(apperror.CodeInvalidInput, "from and to must be valid dates with from <= to", http.StatusBadRequest)
	ErrInvalidPeriod    = apperror.New(apperror.CodeInvalidInput, "period must be formatted as YYYY-MM", http.StatusBadRequest)
)
