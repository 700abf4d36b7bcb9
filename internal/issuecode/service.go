// Package issuecode tracks the most recently issued credential code per
// resident so that superseded printed or emailed codes can be rejected.
package issuecode

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	dErrors "respass/pkg/domain-errors"
)

type Store interface {
	Latest(ctx context.Context, residentID string) (int64, bool, error)
	SetLatest(ctx context.Context, residentID string, issueCode int64) error
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Record makes issueCode the only valid code for subject.
func (s *Service) Record(ctx context.Context, subject string, issueCode int64) error {
	if subject == "" || issueCode < 1 {
		return dErrors.New(dErrors.CodeValidation, "subject and positive issue code are required")
	}
	if err := s.store.SetLatest(ctx, subject, issueCode); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "issue code registry unavailable")
	}
	s.logger.DebugContext(ctx, "issue code recorded", "subject", subject, "ic", issueCode)
	return nil
}

// Check accepts any code for a resident with no recorded code, and otherwise
// only the recorded one.
func (s *Service) Check(ctx context.Context, residentID, supplied string) error {
	residentID = strings.TrimSpace(residentID)
	if residentID == "" {
		return dErrors.New(dErrors.CodeBadRequest, `Did not receive a "rid" search param.`)
	}
	latest, ok, err := s.store.Latest(ctx, residentID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "issue code registry unavailable")
	}
	if !ok {
		return nil
	}
	if strings.TrimSpace(supplied) == strconv.FormatInt(latest, 10) {
		return nil
	}
	return dErrors.New(dErrors.CodeUnauthorized, fmt.Sprintf("Last valid: %d; Supplied: %s", latest, supplied))
}
