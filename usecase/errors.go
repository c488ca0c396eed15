package usecase

import (
	"errors"
	"fmt"

	"plazoleta-api/identity"
)

// Kind classifies a use case failure.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindUnauthorized
	KindIdentityNotFound
	KindRestaurantNotFound
	KindDishNotFound
	KindIdentityServiceUnavailable
)

var kindNames = map[Kind]string{
	KindInvalidInput:               "invalid_input",
	KindUnauthorized:               "unauthorized",
	KindIdentityNotFound:           "identity_not_found",
	KindRestaurantNotFound:         "restaurant_not_found",
	KindDishNotFound:               "dish_not_found",
	KindIdentityServiceUnavailable: "identity_service_unavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind of err. ok is false for unclassified errors.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func invalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

const (
	msgNotOwner           = "not an owner"
	msgRestaurantNotOwned = "restaurant not owned"
)

// identityError maps lookup failures to use case kinds. Unclassified
// errors are returned unchanged.
func identityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrNotFound):
		return &Error{Kind: KindIdentityNotFound, Message: "identity not found", Err: err}
	case errors.Is(err, identity.ErrUnavailable):
		return &Error{Kind: KindIdentityServiceUnavailable, Message: "identity service unavailable", Err: err}
	default:
		return err
	}
}
