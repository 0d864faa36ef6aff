package domain

import (
	"errors"
	"fmt"
)

// Error codes shared by the HTTP layer and the React console.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
	CodeDuplicatePhone   = "DUPLICATE_PHONE"
	CodeDuplicateName    = "DUPLICATE_NAME"
	CodeDuplicatePlate   = "DUPLICATE_PLATE"
	CodeDuplicateUser    = "DUPLICATE_USERNAME"
	CodeScheduleConflict = "SCHEDULE_CONFLICT"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeInUse            = "RESOURCE_IN_USE"

	CodeCustomerHasOrders  = "CUSTOMER_HAS_ORDERS"
	CodeProjectInUse       = "PROJECT_IN_USE"
	CodePackageInUse       = "PACKAGE_IN_USE"
	CodeCoachInUse         = "COACH_IN_USE"
	CodeVehicleInUse       = "VEHICLE_IN_USE"
	CodeDriverInUse        = "DRIVER_IN_USE"
	CodeAccommodationInUse = "ACCOMMODATION_IN_USE"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Code  string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ErrorCode falls back to VALIDATION_ERROR.
func (e ValidationError) ErrorCode() string {
	if e.Code == "" {
		return CodeValidation
	}
	return e.Code
}

type ConflictError struct {
	Resource string
	Msg      string
	Code     string
	Details  any
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

func (e ConflictError) ErrorCode() string {
	if e.Code == "" {
		return CodeConflict
	}
	return e.Code
}

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

type RateLimitError struct {
	Msg string
}

func (e RateLimitError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "too many requests"
}

func IsRateLimited(err error) bool {
	var target RateLimitError
	return errors.As(err, &target)
}
