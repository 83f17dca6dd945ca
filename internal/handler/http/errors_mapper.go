package http

import (
	"errors"
	"net/http"

	"github.com/civicgrid/civicwatch/internal/service"
	"github.com/civicgrid/civicwatch/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:       http.StatusBadRequest,
	service.ErrWrongPassword:             http.StatusUnauthorized,
	service.ErrTokenIsExpired:            http.StatusUnauthorized,
	service.ErrInvalidStatusTransition:   http.StatusConflict,
	service.ErrReportNotAssignedToWorker: http.StatusForbidden,
	service.ErrNotReportOwner:            http.StatusForbidden,
	service.ErrReportAlreadyResolved:     http.StatusConflict,
	service.ErrComplaintAlreadySent:      http.StatusConflict,
	service.ErrComplaintNotSent:          http.StatusConflict,
	service.ErrInvalidComplaintStatus:    http.StatusBadRequest,
	service.ErrRelayNotConfigured:        http.StatusServiceUnavailable,

	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrReportNotFound:      http.StatusNotFound,
	store.ErrWorkerNotFound:      http.StatusNotFound,
	store.ErrLiveFeedUnavailable: http.StatusServiceUnavailable,

	store.ErrBuildingQuery:  http.StatusInternalServerError,
	store.ErrExecutingQuery: http.StatusInternalServerError,
	store.ErrScanningRow:    http.StatusInternalServerError,
	store.ErrScanningRows:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
