package jwttoken

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"respass/internal/notify"
	"respass/internal/platform/metrics"
	dErrors "respass/pkg/domain-errors"
)

// Deliverer sends the rendered token to its subject.
type Deliverer interface {
	Trigger(ctx context.Context, t notify.Trigger) error
}

// IssueCodeRecorder remembers the latest issue code per subject.
type IssueCodeRecorder interface {
	Record(ctx context.Context, subject string, issueCode int64) error
}

// IssueResult carries the signed token and an optional non-fatal warning.
type IssueResult struct {
	Token   string
	Warning string
}

var ErrMissingPayload = dErrors.New(dErrors.CodeBadRequest, "Missing header or payload")

// Issuer mints ES256 credentials.
type Issuer struct {
	privateKey *ecdsa.PrivateKey
	logger     *slog.Logger
	metrics    *metrics.Metrics
	deliverer  Deliverer
	registry   IssueCodeRecorder
	workflow   string
}

type IssuerOption func(*Issuer)

func WithDeliverer(d Deliverer, workflow string) IssuerOption {
	return func(i *Issuer) {
		i.deliverer = d
		i.workflow = workflow
	}
}

func WithIssueCodeRecorder(r IssueCodeRecorder) IssuerOption {
	return func(i *Issuer) { i.registry = r }
}

func WithMetrics(m *metrics.Metrics) IssuerOption {
	return func(i *Issuer) { i.metrics = m }
}

func NewIssuer(privateKey *ecdsa.PrivateKey, logger *slog.Logger, opts ...IssuerOption) *Issuer {
	i := &Issuer{privateKey: privateKey, logger: logger}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs claims as-is; the caller owns claim completeness. When
// sendToChannel is set the token is also delivered to claims.Subject as a QR
// code. Delivery and issue-code bookkeeping failures never invalidate the
// token and are reported through IssueResult.Warning.
func (i *Issuer) Issue(ctx context.Context, alg string, claims *Claims, sendToChannel bool) (*IssueResult, error) {
	if claims == nil {
		return nil, ErrMissingPayload
	}
	if alg == "" {
		alg = jwt.SigningMethodES256.Alg()
	}
	if alg != jwt.SigningMethodES256.Alg() {
		return nil, signingFailure(fmt.Errorf("unsupported algorithm %q", alg))
	}
	if i.privateKey == nil {
		return nil, signingFailure(fmt.Errorf("no signing key configured"))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(i.privateKey)
	if err != nil {
		return nil, signingFailure(err)
	}
	i.metrics.IncrementTokensIssued()

	var warnings []string
	if claims.IssueCode > 0 && claims.Subject != "" && i.registry != nil {
		if err := i.registry.Record(ctx, claims.Subject, claims.IssueCode); err != nil {
			i.logger.WarnContext(ctx, "failed to record issue code",
				"subject", claims.Subject,
				"ic", claims.IssueCode,
				"error", err,
			)
			warnings = append(warnings, "issue code not recorded: "+err.Error())
		}
	}
	if sendToChannel {
		if err := i.deliver(ctx, token, claims.Subject); err != nil {
			i.logger.WarnContext(ctx, "failed to deliver token",
				"subject", claims.Subject,
				"workflow", i.workflow,
				"error", err,
			)
			warnings = append(warnings, "token delivery failed: "+err.Error())
		}
	}

	return &IssueResult{Token: token, Warning: strings.Join(warnings, "; ")}, nil
}

func (i *Issuer) deliver(ctx context.Context, token, subject string) error {
	if i.deliverer == nil {
		return fmt.Errorf("no delivery channel configured")
	}
	if subject == "" {
		return fmt.Errorf("token has no subject to deliver to")
	}
	png, err := RenderQR(token)
	if err != nil {
		return err
	}
	return i.deliverer.Trigger(ctx, notify.Trigger{
		Workflow:   i.workflow,
		Recipients: []string{subject},
		Attachments: []notify.Attachment{
			{Name: "credential.png", ContentType: "image/png", Content: base64.StdEncoding.EncodeToString(png)},
			{Name: "credential.txt", ContentType: "text/plain", Content: base64.StdEncoding.EncodeToString([]byte(token))},
		},
	})
}

func signingFailure(err error) error {
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to sign token")
}
