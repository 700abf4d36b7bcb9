package jwttoken

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"respass/internal/jwt_token/mocks"
	"respass/internal/notify"
	dErrors "respass/pkg/domain-errors"
)

//go:generate mockgen -source=issuer.go -destination=mocks/mocks.go -package=mocks Deliverer,IssueCodeRecorder

type TokenSuite struct {
	suite.Suite
	key      *ecdsa.PrivateKey
	verifier *Verifier
	issuer   *Issuer
	logger   *slog.Logger
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(TokenSuite))
}

func (s *TokenSuite) SetupTest() {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	s.Require().NoError(err)
	s.key = key
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.verifier = NewVerifier(&key.PublicKey)
	s.issuer = NewIssuer(key, s.logger)
}

func staffClaims() *Claims {
	return &Claims{
		Name:      "Front Desk",
		Role:      RoleStaff,
		IssueCode: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "20",
			Issuer:  "respass",
		},
	}
}

func (s *TokenSuite) sign(method jwt.SigningMethod, key any, claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	s.Require().NoError(err)
	return token
}

func (s *TokenSuite) TestIssueThenVerifyRoundTrip() {
	res, err := s.issuer.Issue(context.Background(), "ES256", staffClaims(), false)
	s.Require().NoError(err)
	s.Empty(res.Warning)

	claims, err := s.verifier.VerifyStaff(res.Token)
	s.Require().NoError(err)
	s.Equal("20", claims.Subject)
	s.Equal("Front Desk", claims.Name)
	s.Equal(int64(1), claims.IssueCode)
}

func (s *TokenSuite) TestVerifyRejections() {
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	s.Require().NoError(err)

	expired := staffClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	without := func(drop func(c *Claims)) *Claims {
		c := staffClaims()
		drop(c)
		return c
	}
	admin := staffClaims()
	admin.Role = "admin"

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrMissingCredential},
		{name: "whitespace", token: "  ", want: ErrMissingCredential},
		{name: "garbage", token: "not.a.jwt", want: ErrInvalidSignature},
		{name: "foreign key", token: s.sign(jwt.SigningMethodES256, otherKey, staffClaims()), want: ErrInvalidSignature},
		{name: "hmac", token: s.sign(jwt.SigningMethodHS256, []byte("secret"), staffClaims()), want: ErrInvalidSignature},
		{name: "unsigned", token: s.sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, staffClaims()), want: ErrInvalidSignature},
		{name: "expired", token: s.sign(jwt.SigningMethodES256, s.key, expired), want: ErrTokenExpired},
		{name: "missing sub", token: s.sign(jwt.SigningMethodES256, s.key, without(func(c *Claims) { c.Subject = "" })), want: MissingClaimsError([]string{"sub"})},
		{name: "missing name", token: s.sign(jwt.SigningMethodES256, s.key, without(func(c *Claims) { c.Name = "" })), want: MissingClaimsError([]string{"name"})},
		{name: "missing role", token: s.sign(jwt.SigningMethodES256, s.key, without(func(c *Claims) { c.Role = "" })), want: MissingClaimsError([]string{"role"})},
		{name: "missing ic", token: s.sign(jwt.SigningMethodES256, s.key, without(func(c *Claims) { c.IssueCode = 0 })), want: MissingClaimsError([]string{"ic"})},
		{name: "missing iss", token: s.sign(jwt.SigningMethodES256, s.key, without(func(c *Claims) { c.Issuer = "" })), want: MissingClaimsError([]string{"iss"})},
		{name: "missing name and ic", token: s.sign(jwt.SigningMethodES256, s.key, without(func(c *Claims) { c.Name = ""; c.IssueCode = 0 })), want: MissingClaimsError([]string{"name", "ic"})},
		{name: "unknown role", token: s.sign(jwt.SigningMethodES256, s.key, admin), want: UnknownRoleError("admin")},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.verifier.Verify(tt.token)
			s.ErrorIs(err, tt.want)
			s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func (s *TokenSuite) TestVerifyStaffReportsActualRole() {
	res := staffClaims()
	res.Role = RoleResident
	token := s.sign(jwt.SigningMethodES256, s.key, res)

	claims, err := s.verifier.Verify(token)
	s.Require().NoError(err)
	s.Equal(RoleResident, claims.Role)

	_, err = s.verifier.VerifyStaff(token)
	s.Require().Error(err)
	s.Equal(`A "staff" token is required, this token has "res"`, err.Error())
}

func (s *TokenSuite) TestIssueRejectsMissingPayload() {
	_, err := s.issuer.Issue(context.Background(), "ES256", nil, false)
	s.ErrorIs(err, ErrMissingPayload)
}

func (s *TokenSuite) TestIssueRejectsOtherAlgorithms() {
	_, err := s.issuer.Issue(context.Background(), "HS256", staffClaims(), false)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Contains(err.Error(), "unsupported algorithm")
}

func (s *TokenSuite) TestIssueDoesNotValidateClaims() {
	res, err := s.issuer.Issue(context.Background(), "", &Claims{}, false)
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
}

func (s *TokenSuite) TestIssueDeliversQRCode() {
	ctrl := gomock.NewController(s.T())
	deliverer := mocks.NewMockDeliverer(ctrl)
	issuer := NewIssuer(s.key, s.logger, WithDeliverer(deliverer, "token-delivery"))

	var sent notify.Trigger
	deliverer.EXPECT().Trigger(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, t notify.Trigger) error {
		sent = t
		return nil
	})

	res, err := issuer.Issue(context.Background(), "ES256", staffClaims(), true)
	s.Require().NoError(err)
	s.Empty(res.Warning)

	s.Equal("token-delivery", sent.Workflow)
	s.Equal([]string{"20"}, sent.Recipients)
	s.Require().Len(sent.Attachments, 2)
	png, err := base64.StdEncoding.DecodeString(sent.Attachments[0].Content)
	s.Require().NoError(err)
	s.Equal([]byte("\x89PNG"), png[:4])
	raw, err := base64.StdEncoding.DecodeString(sent.Attachments[1].Content)
	s.Require().NoError(err)
	s.Equal(res.Token, string(raw))
}

func (s *TokenSuite) TestIssueDeliveryFailureIsWarning() {
	ctrl := gomock.NewController(s.T())
	deliverer := mocks.NewMockDeliverer(ctrl)
	issuer := NewIssuer(s.key, s.logger, WithDeliverer(deliverer, "token-delivery"))
	deliverer.EXPECT().Trigger(gomock.Any(), gomock.Any()).Return(errors.New("provider down"))

	res, err := issuer.Issue(context.Background(), "ES256", staffClaims(), true)
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
	s.Contains(res.Warning, "provider down")

	_, err = s.verifier.Verify(res.Token)
	s.NoError(err)
}

func (s *TokenSuite) TestIssueRecordsIssueCode() {
	ctrl := gomock.NewController(s.T())
	recorder := mocks.NewMockIssueCodeRecorder(ctrl)
	issuer := NewIssuer(s.key, s.logger, WithIssueCodeRecorder(recorder))

	claims := staffClaims()
	claims.IssueCode = 4
	recorder.EXPECT().Record(gomock.Any(), "20", int64(4)).Return(nil)

	_, err := issuer.Issue(context.Background(), "ES256", claims, false)
	s.NoError(err)
}

func TestParseKeys(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	privDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	pubPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	privPEM := string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER}))

	pub, err := ParsePublicKey(pubPEM)
	require.NoError(t, err)
	assert.True(t, pub.Equal(&key.PublicKey))

	// single-line env form
	escaped := ""
	for _, r := range privPEM {
		if r == '\n' {
			escaped += `\n`
			continue
		}
		escaped += string(r)
	}
	priv, err := ParsePrivateKey(escaped)
	require.NoError(t, err)
	assert.True(t, priv.Equal(key))

	_, err = ParsePublicKey("garbage")
	assert.Error(t, err)
}

func TestStaffValidatorAdapter(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := NewIssuer(key, logger).Issue(context.Background(), "ES256", staffClaims(), false)
	require.NoError(t, err)

	adapter := NewStaffValidatorAdapter(NewVerifier(&key.PublicKey))
	claims, err := adapter.ValidateStaffToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "20", claims.Subject)
	assert.Equal(t, RoleStaff, claims.Role)
}
