package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-route-service/internal/api/dto"
	"venue-route-service/internal/api/handlers"
	"venue-route-service/internal/domain"
	"venue-route-service/internal/ports"
)

type memRepo struct {
	venues map[string]*domain.Venue
}

func (m *memRepo) GetVenue(_ context.Context, id string) (*domain.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, ports.ErrVenueNotFound
	}
	return v, nil
}

func (m *memRepo) ListVenues(context.Context) ([]ports.VenueSummary, error) {
	out := make([]ports.VenueSummary, 0, len(m.venues))
	for _, v := range m.venues {
		out = append(out, ports.VenueSummary{
			ID: v.ID, Name: v.Name, Rows: v.Grid.Rows(), Cols: v.Grid.Cols(), StallCount: len(v.Stalls),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func box(id string, x, y int) domain.Stall {
	return domain.Stall{ID: id, Name: strings.ToUpper(id), Kind: domain.StallBox, Origin: domain.Position{X: x, Y: y}}
}

func testRepo(t *testing.T) *memRepo {
	t.Helper()

	plazaGrid, err := domain.ParseGrid([]string{
		"B...B",
		".....",
		".....",
		".....",
		"B...B",
	})
	require.NoError(t, err)
	plaza, err := domain.NewVenue("plaza", "Plaza", plazaGrid, []domain.Stall{
		box("nw", 0, 0), box("ne", 4, 0), box("sw", 0, 4), box("se", 4, 4),
	})
	require.NoError(t, err)

	vaultGrid, err := domain.ParseGrid([]string{
		".....",
		".###.",
		".#B#.",
		".###.",
		"....B",
	})
	require.NoError(t, err)
	vault, err := domain.NewVenue("vault", "Vault", vaultGrid, []domain.Stall{
		box("locked", 2, 2), box("open", 4, 4),
	})
	require.NoError(t, err)

	return &memRepo{venues: map[string]*domain.Venue{"plaza": plaza, "vault": vault}}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{Repo: testRepo(t), BatchConcurrency: 2})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPlanRouteEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/venues/plaza/routes",
		`{"start":{"x":2,"y":2},"stalls":["nw","ne","sw","se","nw"]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	res := decode[dto.RouteResponse](t, rec)
	assert.Equal(t, "plaza", res.VenueID)
	assert.Equal(t, 16, res.Distance)
	assert.Len(t, res.Steps, 17)
	assert.Equal(t, dto.PositionDTO{X: 2, Y: 2}, res.Steps[0])
	require.Len(t, res.Order, 4)
	require.Len(t, res.Visits, 4)
	require.Len(t, res.Legs, 4)

	for _, v := range res.Visits {
		if v.Position == (dto.PositionDTO{X: 0, Y: 0}) {
			assert.Equal(t, []string{"nw", "nw"}, v.Refs)
		}
	}
	total := 0
	for _, l := range res.Legs {
		total += l.Length
	}
	assert.Equal(t, res.Distance, total)
}

func TestPlanRouteRawDestinations(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/venues/vault/routes",
		`{"start":{"x":0,"y":0},"destinations":[{"x":4,"y":4}]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.RouteResponse](t, rec)
	assert.Equal(t, 8, res.Distance)
	require.Len(t, res.Visits, 1)
	assert.Equal(t, []string{"(4,4)"}, res.Visits[0].Refs)
}

func TestPlanRouteNoDestinations(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/venues/plaza/routes", `{"start":{"x":1,"y":1}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.RouteResponse](t, rec)
	assert.Equal(t, 0, res.Distance)
	assert.Equal(t, []dto.PositionDTO{{X: 1, Y: 1}}, res.Steps)
	assert.Empty(t, res.Order)
}

func TestPlanRouteErrors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"UnknownVenue", "/venues/nope/routes", `{"start":{"x":0,"y":0}}`, http.StatusNotFound, "venue not found"},
		{"MissingStart", "/venues/plaza/routes", `{"stalls":["nw"]}`, http.StatusBadRequest, "start is required"},
		{"StartOnStall", "/venues/plaza/routes", `{"start":{"x":0,"y":0},"stalls":["ne"]}`, http.StatusBadRequest, "start at (0,0) is occupiable"},
		{"StartOutOfBounds", "/venues/plaza/routes", `{"start":{"x":9,"y":0}}`, http.StatusBadRequest, "out_of_bounds"},
		{"DestinationOnPath", "/venues/plaza/routes", `{"start":{"x":1,"y":1},"destinations":[{"x":2,"y":2}]}`, http.StatusBadRequest, "destination 0 at (2,2) is path"},
		{"UnknownStall", "/venues/plaza/routes", `{"start":{"x":1,"y":1},"stalls":["kiosk"]}`, http.StatusBadRequest, `no stall "kiosk"`},
		{"Unreachable", "/venues/vault/routes", `{"start":{"x":0,"y":0},"stalls":["open","locked"]}`, http.StatusUnprocessableEntity, "no path found"},
		{"UnknownField", "/venues/plaza/routes", `{"start":{"x":1,"y":1},"speed":3}`, http.StatusBadRequest, "invalid json body"},
		{"TwoObjects", "/venues/plaza/routes", `{"start":{"x":1,"y":1}}{}`, http.StatusBadRequest, "only one JSON object"},
	}

	h := newTestRouter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.path, tc.body)

			assert.Equal(t, tc.status, rec.Code)
			res := decode[map[string]string](t, rec)
			assert.Contains(t, res["error"], tc.msg)
		})
	}
}

func TestPlanRouteMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/venues/plaza/routes", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestPlanBatchEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/venues/vault/routes/batch", `{"requests":[
		{"start":{"x":0,"y":0},"stalls":["open"]},
		{"start":{"x":0,"y":0},"stalls":["locked"]},
		{"start":{"x":0,"y":0},"stalls":["missing"]},
		{"stalls":["open"]},
		{"start":{"x":4,"y":0},"stalls":["open","open"]}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.BatchRouteResponse](t, rec)
	require.Len(t, res.Results, 5)

	require.NotNil(t, res.Results[0].Route)
	assert.Equal(t, 8, res.Results[0].Route.Distance)
	assert.Nil(t, res.Results[0].Error)

	require.NotNil(t, res.Results[1].Error)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Results[1].Error.Status)
	require.NotNil(t, res.Results[2].Error)
	assert.Equal(t, http.StatusBadRequest, res.Results[2].Error.Status)
	require.NotNil(t, res.Results[3].Error)
	assert.Equal(t, http.StatusBadRequest, res.Results[3].Error.Status)

	require.NotNil(t, res.Results[4].Route)
	assert.Equal(t, 4, res.Results[4].Route.Distance)
	assert.Equal(t, []string{"open", "open"}, res.Results[4].Route.Visits[0].Refs)
}

func TestPlanBatchRejectsEmpty(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/venues/plaza/routes/batch", `{"requests":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVenueEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/venues", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[dto.ListVenuesResponse](t, rec)
	require.Len(t, list.Venues, 2)
	assert.Equal(t, dto.VenueSummaryResponse{VenueID: "plaza", Name: "Plaza", Rows: 5, Cols: 5, StallCount: 4}, list.Venues[0])

	rec = do(t, h, http.MethodGet, "/venues/vault", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[dto.VenueResponse](t, rec)
	assert.Equal(t, []string{".....", ".###.", ".#O#.", ".###.", "....O"}, v.Layout)
	require.Len(t, v.Stalls, 2)
	assert.Equal(t, dto.PositionDTO{X: 2, Y: 2}, v.Stalls[0].Entrance)
	assert.Equal(t, 1, v.Stalls[0].Width)

	rec = do(t, h, http.MethodGet, "/venues/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ok := NewRouter(Deps{Repo: testRepo(t), Checks: map[string]handlers.Check{
		"db": func(context.Context) error { return nil },
	}})
	rec := do(t, ok, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok", "db": "ok"}, decode[map[string]string](t, rec))

	degraded := NewRouter(Deps{Repo: testRepo(t), Checks: map[string]handlers.Check{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}})
	rec = do(t, degraded, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "connection refused", decode[map[string]string](t, rec)["redis"])
}

func TestRateLimitOnPlanning(t *testing.T) {
	h := NewRouter(Deps{Repo: testRepo(t), PlanRateLimit: 0.001, PlanRateBurst: 1})
	body := `{"start":{"x":1,"y":1}}`

	first := do(t, h, http.MethodPost, "/venues/plaza/routes", body)
	second := do(t, h, http.MethodPost, "/venues/plaza/routes", body)
	venues := do(t, h, http.MethodGet, "/venues", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, venues.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/venues/plaza/routes", `{"start":{"x":2,"y":2},"stalls":["nw"]}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{code="200",method="POST",route="/venues/{id}/routes"}`)
	assert.Contains(t, body, `route_plans_total{outcome="ok"}`)
	assert.Contains(t, body, "route_plan_duration_seconds_bucket")
}
