package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrTokenIsExpired      = errors.New("token is expired")

	ErrInvalidStatusTransition   = errors.New("invalid report status transition")
	ErrReportNotAssignedToWorker = errors.New("report is not assigned to this worker")

	ErrNotReportOwner         = errors.New("report belongs to another user")
	ErrReportAlreadyResolved  = errors.New("report is already resolved")
	ErrComplaintAlreadySent   = errors.New("complaint has already been sent")
	ErrComplaintNotSent       = errors.New("no complaint has been sent for this report")
	ErrInvalidComplaintStatus = errors.New("invalid complaint status")
	ErrRelayNotConfigured     = errors.New("email relay is not configured")
)
