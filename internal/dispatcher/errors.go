package dispatcher

import (
	"errors"
	"fmt"
)

var (
	ErrMissingData       = errors.New("message event has no data or no recipient")
	ErrRecipientNotFound = errors.New("no user profile found for recipient")
	ErrNoDeliveryAddress = errors.New("recipient has no push token")
)

// DeliveryError wraps a failure of the lookup or send call.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver notification: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
