package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/org-directory/internal/config"
	httpDelivery "github.com/org-directory/internal/delivery/http"
	"github.com/org-directory/internal/delivery/http/handler"
	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/repository/memory"
	"github.com/org-directory/internal/usecase"
)

const (
	testToken  = "secret-token"
	testHeader = "X-API-Key"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Kind    string                 `json:"kind"`
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func newTestConfig(cacheBackend string) *config.Config {
	return &config.Config{
		Auth:  config.AuthConfig{Token: testToken, HeaderName: testHeader},
		Cache: config.CacheConfig{Backend: cacheBackend, ResponseTTL: 10 * time.Second},
		Query: config.QueryConfig{ActivitiesDepth: 3, EarthRadiusM: 6_371_000},
	}
}

func newTestServer(cfg *config.Config) *httpDelivery.Server {
	logger := zap.NewNop()
	store := memory.NewStore(logger, cfg.Query.EarthRadiusM)
	depth := cfg.Query.ActivitiesDepth

	tree := usecase.NewActivityTree(store.Activities(), logger)
	orgUC := usecase.NewOrganizationUseCase(
		store, store.Organizations(), store.Buildings(), store.Activities(), store.PhoneNumbers(),
		tree, depth, logger,
	)

	handlers := httpDelivery.Handlers{
		Organization: handler.NewOrganizationHandler(orgUC, logger),
		Activity:     handler.NewActivityHandler(usecase.NewActivityUseCase(store, store.Activities(), tree, depth, logger), logger),
		Building:     handler.NewBuildingHandler(usecase.NewBuildingUseCase(store, store.Buildings(), logger), logger),
		PhoneNumber:  handler.NewPhoneNumberHandler(usecase.NewPhoneNumberUseCase(store.PhoneNumbers(), logger), logger),
		Filler:       handler.NewFillerHandler(usecase.NewFillerUseCase(store, logger), logger),
		Health:       handler.NewHealthHandler(map[string]handler.Pinger{"storage": store}, logger),
	}

	return httpDelivery.NewServer(cfg, logger, handlers, nil)
}

type ServerSuite struct {
	suite.Suite
	app *fiber.App
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.app = newTestServer(newTestConfig(config.CacheBackendNone)).App()
}

func (s *ServerSuite) do(method, target string, body interface{}) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(testHeader, testToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *ServerSuite) decode(env envelope, out interface{}) {
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

func (s *ServerSuite) fill() {
	status, _ := s.do(fiber.MethodPost, "/api/v1/filler/fill", nil)
	s.Require().Equal(fiber.StatusNoContent, status)
}

func (s *ServerSuite) activityByName(name string) domain.Activity {
	status, env := s.do(fiber.MethodGet, "/api/v1/activities?limit=100&depth=0", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var activities []domain.Activity
	s.decode(env, &activities)
	for _, a := range activities {
		if a.Name == name {
			return a
		}
	}
	s.FailNow("activity not found", name)
	return domain.Activity{}
}

func (s *ServerSuite) TestHealthIsPublic() {
	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/health", nil), -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get(fiber.HeaderXRequestID))
}

func (s *ServerSuite) TestMissingAPIKey() {
	for _, key := range []string{"", "wrong"} {
		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/organizations", nil)
		if key != "" {
			req.Header.Set(testHeader, key)
		}
		resp, err := s.app.Test(req, -1)
		s.Require().NoError(err)
		s.Equal(fiber.StatusUnauthorized, resp.StatusCode)

		var env envelope
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
		s.Require().NotNil(env.Error)
		s.Equal("unauthorized", env.Error.Kind)
	}
}

func (s *ServerSuite) TestFoodCarsScenario() {
	s.fill()
	food := s.activityByName("Food")
	cars := s.activityByName("Cars")
	meat := s.activityByName("Meat")

	status, env := s.do(fiber.MethodGet, "/api/v1/organizations?activity_id="+meat.ID.String(), nil)
	s.Require().Equal(fiber.StatusOK, status)
	var orgs []domain.Organization
	s.decode(env, &orgs)
	s.Empty(orgs, "organization is linked to the root only")

	status, env = s.do(fiber.MethodGet, "/api/v1/organizations?activity_id="+food.ID.String(), nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.decode(env, &orgs)
	s.Require().Len(orgs, 1)
	s.Equal("Horns and hooves", orgs[0].Name)
	s.Len(orgs[0].PhoneNumbers, 2)

	status, env = s.do(fiber.MethodGet, "/api/v1/organizations?activity_id="+cars.ID.String(), nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.decode(env, &orgs)
	s.Len(orgs, 1)

	status, env = s.do(fiber.MethodGet, "/api/v1/organizations?activity_id="+uuid.NewString(), nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.JSONEq("[]", string(env.Data))
}

func (s *ServerSuite) TestSearchByGeo() {
	s.fill()

	status, env := s.do(fiber.MethodGet, "/api/v1/organizations?geo_kind=radius&lat=55.7558&lon=37.6176&radius_m=10", nil)
	s.Require().Equal(fiber.StatusOK, status)
	var orgs []domain.Organization
	s.decode(env, &orgs)
	s.Len(orgs, 1)

	status, env = s.do(fiber.MethodGet, "/api/v1/organizations?geo_kind=bbox&lat_min=0&lat_max=1&lon_min=0&lon_max=1", nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.decode(env, &orgs)
	s.Empty(orgs)
}

func (s *ServerSuite) TestSearchValidation() {
	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"building with geo", "building_id=" + uuid.NewString() + "&geo_kind=radius&lat=1&lon=1&radius_m=5", "GEO_WITH_BUILDING"},
		{"radius too large", "geo_kind=radius&lat=1&lon=1&radius_m=200000", "INVALID_RADIUS"},
		{"inverted bbox", "geo_kind=bbox&lat_min=2&lat_max=1&lon_min=0&lon_max=1", "INVALID_BBOX"},
		{"bad building id", "building_id=nope", "VALIDATION_ERROR"},
		{"limit too big", "limit=1000", "INVALID_PAGINATION"},
		{"negative offset", "offset=-1", "INVALID_PAGINATION"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			status, env := s.do(fiber.MethodGet, "/api/v1/organizations?"+tt.query, nil)
			s.Equal(fiber.StatusUnprocessableEntity, status)
			s.Require().NotNil(env.Error)
			s.Equal("validation_error", env.Error.Kind)
			s.Equal(tt.code, env.Error.Code)
		})
	}
}

func (s *ServerSuite) TestOrganizationLifecycle() {
	status, env := s.do(fiber.MethodPost, "/api/v1/buildings", map[string]interface{}{
		"address": "Blue street 1", "latitude": 10.5, "longitude": 20.5,
	})
	s.Require().Equal(fiber.StatusCreated, status)
	var building domain.Building
	s.decode(env, &building)

	status, env = s.do(fiber.MethodPost, "/api/v1/activities", map[string]interface{}{"name": "Food"})
	s.Require().Equal(fiber.StatusCreated, status)
	var food domain.Activity
	s.decode(env, &food)

	status, env = s.do(fiber.MethodPost, "/api/v1/phone-numbers", map[string]interface{}{"phone_number": "+7 900 000-00-00"})
	s.Require().Equal(fiber.StatusCreated, status)
	var phone domain.PhoneNumber
	s.decode(env, &phone)

	status, env = s.do(fiber.MethodPost, "/api/v1/organizations", map[string]interface{}{
		"name": "Acme", "building_id": building.ID,
	})
	s.Require().Equal(fiber.StatusCreated, status)
	var org domain.Organization
	s.decode(env, &org)
	s.Empty(org.Activities)

	path := "/api/v1/organizations/" + org.ID.String()

	status, _ = s.do(fiber.MethodPost, path+"/activities", map[string]interface{}{"ids": []uuid.UUID{food.ID}})
	s.Require().Equal(fiber.StatusNoContent, status)
	status, _ = s.do(fiber.MethodPost, path+"/activities", map[string]interface{}{"ids": []uuid.UUID{food.ID}})
	s.Require().Equal(fiber.StatusNoContent, status)
	status, _ = s.do(fiber.MethodPost, path+"/phone-numbers", map[string]interface{}{"ids": []uuid.UUID{phone.ID}})
	s.Require().Equal(fiber.StatusNoContent, status)

	status, env = s.do(fiber.MethodGet, path, nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.decode(env, &org)
	s.Len(org.Activities, 1)
	s.Len(org.PhoneNumbers, 1)

	missing := uuid.New()
	status, env = s.do(fiber.MethodPost, path+"/activities", map[string]interface{}{"ids": []uuid.UUID{missing}})
	s.Equal(fiber.StatusNotFound, status)
	s.Require().NotNil(env.Error)
	s.Equal(missing.String(), env.Error.Details["id"])

	status, _ = s.do(fiber.MethodDelete, path+"/activities", map[string]interface{}{"ids": []uuid.UUID{}})
	s.Equal(fiber.StatusNoContent, status)

	status, env = s.do(fiber.MethodPut, path, map[string]interface{}{"name": "Acme 2", "building_id": building.ID})
	s.Require().Equal(fiber.StatusOK, status)
	s.decode(env, &org)
	s.Equal("Acme 2", org.Name)

	status, _ = s.do(fiber.MethodDelete, "/api/v1/buildings/"+building.ID.String(), nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	status, env = s.do(fiber.MethodGet, path, nil)
	s.Equal(fiber.StatusNotFound, status)
	s.Require().NotNil(env.Error)
	s.Equal("not_found", env.Error.Kind)
}

func (s *ServerSuite) TestRequestValidation() {
	status, env := s.do(fiber.MethodPost, "/api/v1/buildings", map[string]interface{}{
		"address": "x", "latitude": 95, "longitude": 0,
	})
	s.Equal(fiber.StatusUnprocessableEntity, status)
	s.Require().NotNil(env.Error)
	s.Contains(env.Error.Details, "latitude")

	status, _ = s.do(fiber.MethodPost, "/api/v1/activities", map[string]interface{}{"name": ""})
	s.Equal(fiber.StatusUnprocessableEntity, status)

	status, _ = s.do(fiber.MethodGet, "/api/v1/activities/not-a-uuid", nil)
	s.Equal(fiber.StatusUnprocessableEntity, status)

	status, _ = s.do(fiber.MethodGet, "/api/v1/phone-numbers/"+uuid.NewString(), nil)
	s.Equal(fiber.StatusNotFound, status)

	status, env = s.do(fiber.MethodGet, "/api/v1/nope", nil)
	s.Equal(fiber.StatusNotFound, status)
	s.Require().NotNil(env.Error)
}

func (s *ServerSuite) TestActivityCycleRejected() {
	status, env := s.do(fiber.MethodPost, "/api/v1/activities", map[string]interface{}{"name": "root"})
	s.Require().Equal(fiber.StatusCreated, status)
	var root domain.Activity
	s.decode(env, &root)

	status, env = s.do(fiber.MethodPost, "/api/v1/activities", map[string]interface{}{"name": "child", "parent_id": root.ID})
	s.Require().Equal(fiber.StatusCreated, status)
	var child domain.Activity
	s.decode(env, &child)

	status, env = s.do(fiber.MethodPut, "/api/v1/activities/"+root.ID.String(), map[string]interface{}{"name": "root", "parent_id": child.ID})
	s.Equal(fiber.StatusUnprocessableEntity, status)
	s.Require().NotNil(env.Error)
	s.Equal("ACTIVITY_CYCLE", env.Error.Code)

	status, env = s.do(fiber.MethodGet, "/api/v1/activities/"+root.ID.String()+"/descendants", nil)
	s.Require().Equal(fiber.StatusOK, status)
	var ids []uuid.UUID
	s.decode(env, &ids)
	s.ElementsMatch([]uuid.UUID{root.ID, child.ID}, ids)
}

func TestResponseCache(t *testing.T) {
	app := newTestServer(newTestConfig(config.CacheBackendMemory)).App()

	get := func() *http.Response {
		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/buildings?limit=5", nil)
		req.Header.Set(testHeader, testToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	first := get()
	assert.Equal(t, fiber.StatusOK, first.StatusCode)
	assert.Equal(t, "miss", first.Header.Get("X-Cache"))

	second := get()
	assert.Equal(t, fiber.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))
}
