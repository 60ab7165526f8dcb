package exceptions

import (
	"fmt"
	"strings"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

type ConflictError struct {
	Resource string
	Id       string
	Message  string
}

func (ce *ConflictError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 409,
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

func ConflictMessage(resource string, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 404,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

// InvalidInputError is a user-correctable failure. Fields names every
// offending input field when the failure came from validation.
type InvalidInputError struct {
	Message string
	Fields  []string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

func InvalidFields(resource string, fields ...string) *InvalidInputError {
	return &InvalidInputError{
		Message: fmt.Sprintf("Invalid %s, missing or invalid fields: %s", resource, strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

type UnauthenticatedError struct {
	Message string
}

func (ue *UnauthenticatedError) Error() string {
	return ue.Message
}

func (ue *UnauthenticatedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 401,
		Cause:      ue,
	}
}

func Unauthenticated(message string) *UnauthenticatedError {
	return &UnauthenticatedError{
		Message: message,
	}
}

// ForbiddenError never says whether the resource exists or who owns it.
type ForbiddenError struct{}

func (fe *ForbiddenError) Error() string {
	return "Not authorized"
}

func (fe *ForbiddenError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 403,
		Cause:      fe,
	}
}

func Forbidden() *ForbiddenError {
	return &ForbiddenError{}
}

type InternalServerError struct {
	Message string
}

func (ise *InternalServerError) Error() string {
	return ise.Message
}

func (ise *InternalServerError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 500,
		Cause:      ise,
	}
}

func InternalServer(message string) *InternalServerError {
	return &InternalServerError{
		Message: message,
	}
}
