package services

import (
	"errors"

	"campbook/internal/domain"
	"campbook/internal/repositories"
)

// mapRepoErr turns repository sentinels into domain errors. dupCode is used for
// unique-key violations and inUseCode for foreign-key refusals.
func mapRepoErr(err error, resource, dupCode, inUseCode string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return domain.NotFoundError{Resource: resource, Err: err}
	case errors.Is(err, repositories.ErrDuplicate):
		if dupCode == "" {
			dupCode = domain.CodeConflict
		}
		return domain.ConflictError{Resource: resource, Msg: "already exists", Code: dupCode, Err: err}
	case errors.Is(err, repositories.ErrInUse):
		if inUseCode == "" {
			inUseCode = domain.CodeInUse
		}
		return domain.ConflictError{Resource: resource, Msg: "is referenced by other records", Code: inUseCode, Err: err}
	}
	return err
}

func notFound(err error, resource string) error {
	return mapRepoErr(err, resource, "", "")
}

func invalidStatus(resource, from, to string) error {
	return domain.ConflictError{
		Resource: resource,
		Msg:      "cannot change status from " + from + " to " + to,
		Code:     domain.CodeInvalidStatus,
		Details:  map[string]string{"from": from, "to": to},
	}
}

func inUse(resource, code string, count int) error {
	return domain.ConflictError{
		Resource: resource,
		Msg:      "is still referenced",
		Code:     code,
		Details:  map[string]int{"references": count},
	}
}

func required(field string) error {
	return domain.ValidationError{Field: field, Msg: "is required"}
}
