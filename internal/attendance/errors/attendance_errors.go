package attendanceerrors

import (
	"net/http"

	"go-mandor/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(apperror.CodeNotFound, "attendance not found", http.StatusNotFound)
	ErrAlreadyCheckedIn   = apperror.New(apperror.CodeConflict, "worker already checked in today", http.StatusConflict)
	ErrNotCheckedIn       = apperror.New(apperror.CodeNotFound, "no open check-in for today", http.StatusNotFound)
	ErrAlreadyCheckedOut  = apperror.New(apperror.CodeConflict, "worker already checked out today", http.StatusConflict)
	ErrInvalidSource      = apperror.New(apperror.CodeInvalidInput, "source must be QR or MANUAL", http.StatusBadRequest)
	ErrWorkerNotFound     = apperror.New(apperror.CodeNotFound, "worker not found", http.StatusNotFound)
	ErrWorkerInactive     = apperror.New(apperror.CodeInvalidState, "worker is not active", http.StatusUnprocessableEntity)
)
