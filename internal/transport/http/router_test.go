package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"respass/pkg/platform/httputil"
	authmw "respass/pkg/platform/middleware/auth"
	"respass/pkg/requestcontext"
	"respass/pkg/testutil"
)

type stubValidator struct{}

func (stubValidator) ValidateStaffToken(token string) (*authmw.StaffClaims, error) {
	if token != "staff-token" {
		return nil, errors.New("invalid token")
	}
	return &authmw.StaffClaims{Subject: "20", Role: "staff"}, nil
}

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Post("/api/db/addInventory", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteText(w, http.StatusOK, requestcontext.StaffID(r.Context()))
	})
}

func (echoModule) RegisterPublic(r chi.Router) {
	r.Post("/api/db/inventoryQuery", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteText(w, http.StatusOK, "public")
	})
}

type RouterSuite struct {
	suite.Suite
	router http.Handler
	redis  error
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.redis = nil
	s.router = NewRouter(Deps{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Validator: stubValidator{},
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			httputil.WriteText(w, http.StatusOK, "# metrics")
		}),
		Health: []HealthCheck{{Name: "redis", Check: func(context.Context) error { return s.redis }}},
		Public: []PublicRoutes{echoModule{}},
		Staff:  []StaffRoutes{echoModule{}},
	})
}

func (s *RouterSuite) staffPost(path, body string) *http.Request {
	return testutil.WithBearer(testutil.NewRequestWithBody(s.T(), http.MethodPost, path, body), "staff-token")
}

func (s *RouterSuite) TestStaffRouteRequiresToken() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/db/addInventory", `[]`)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *RouterSuite) TestStaffRoutePropagatesSubject() {
	rr := testutil.DoRequest(s.router, s.staffPost("/api/db/addInventory", `[]`))

	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("20", rr.Body.String())
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
	s.Equal("*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestPublicRouteSkipsAuth() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/db/inventoryQuery", `{"building":"a","unit":"1"}`)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("public", rr.Body.String())
}

func (s *RouterSuite) TestJSONGuard() {
	s.Run("wrong content type", func() {
		req := s.staffPost("/api/db/addInventory", `[]`)
		req.Header.Set("Content-Type", "text/plain")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertErrorDescription(s.T(), rr, http.StatusBadRequest, "Expecting JSON POST")
	})

	s.Run("empty body", func() {
		rr := testutil.DoRequest(s.router, s.staffPost("/api/db/addInventory", ""))
		testutil.AssertErrorDescription(s.T(), rr, http.StatusBadRequest, "No JSON payload")
	})
}

func (s *RouterSuite) TestUnknownPath() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/db/dropTables"))

	testutil.AssertErrorDescription(s.T(), rr, http.StatusNotFound, "No service on this path")
}

func (s *RouterSuite) TestPreflight() {
	req := testutil.NewRequest(s.T(), http.MethodOptions, "/api/db/addInventory")
	req.Header.Set("Origin", "https://desk.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	s.Equal("*", rr.Header().Get("Access-Control-Allow-Origin"))
	s.Equal(http.MethodPost, rr.Header().Get("Access-Control-Allow-Methods"))
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "healthy", true)

	s.redis = errors.New("connection refused")
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	assert.Equal(s.T(), http.StatusServiceUnavailable, rr.Code)
}

func (s *RouterSuite) TestMetrics() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), "# metrics")
}
