package notify

import (
	"context"
	"errors"
	"time"

	dErrors "respass/pkg/domain-errors"
)

// WithTimeout bounds every call to next. Deadline expiry is reported as a
// timeout domain error so the HTTP layer answers 504.
func WithTimeout(next Notifier, timeout time.Duration) Notifier {
	return &timeoutNotifier{next: next, timeout: timeout}
}

type timeoutNotifier struct {
	next    Notifier
	timeout time.Duration
}

func (t *timeoutNotifier) Trigger(ctx context.Context, tr Trigger) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return asTimeout(ctx, t.next.Trigger(ctx, tr))
}

func (t *timeoutNotifier) Identify(ctx context.Context, u User) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return asTimeout(ctx, t.next.Identify(ctx, u))
}

func (t *timeoutNotifier) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return asTimeout(ctx, t.next.DeleteUser(ctx, id))
}

func (t *timeoutNotifier) GetUser(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	u, err := t.next.GetUser(ctx, id)
	return u, asTimeout(ctx, err)
}

func asTimeout(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "notification provider timed out")
	}
	return err
}
