// Package sentinel holds the infrastructure errors that stores and
// notifier backends return. Services match them with errors.Is and map
// them onto domain error codes.
package sentinel

import "errors"

// ErrNotFound means the row or the provider-side record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnsupported means the configured backend cannot serve the call, for
// example a contact lookup against the Kafka notifier.
var ErrUnsupported = errors.New("unsupported")
