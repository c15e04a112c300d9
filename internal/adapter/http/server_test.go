package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/collisionviz/collision-dashboard/internal/adapter/http"
	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/render"
)

// --- mock view ---

type mockView struct {
	readyErr error
	viewErr  error
	lastYear string
}

func (m *mockView) YearOptions() []string { return []string{"all", "2020", "2021"} }

func (m *mockView) CheckReadiness(_ context.Context) error { return m.readyErr }

func (m *mockView) CountyView(_ context.Context, f domain.YearFilter) (render.ChoroplethView, error) {
	m.lastYear = f.String()
	if m.viewErr != nil {
		return render.ChoroplethView{}, m.viewErr
	}
	return render.ChoroplethView{
		Locations:  []string{"06001"},
		Values:     []int{42},
		Hover:      []string{"Alameda (06001): 42 fatalities"},
		ColorScale: "YlOrRd",
		Geometry:   json.RawMessage(`{"type":"FeatureCollection","features":[]}`),
		Year:       f.String(),
	}, nil
}

func (m *mockView) HourlyView(f domain.YearFilter) (render.BarView, error) {
	m.lastYear = f.String()
	if m.viewErr != nil {
		return render.BarView{}, m.viewErr
	}
	return render.HourlyBars([]domain.HourlyRecord{{Hour: 8, Year: "2020", Fatalities: 3}}, f.String()), nil
}

func (m *mockView) DayOfWeekView(f domain.YearFilter) (render.BarView, error) {
	if m.viewErr != nil {
		return render.BarView{}, m.viewErr
	}
	return render.DayOfWeekBars([]domain.DayRecord{{Day: "Monday", Year: "2020", Fatalities: 4}}, f.String()), nil
}

func newTestServer(t *testing.T, views httpadapter.View) *httpadapter.Server {
	t.Helper()
	srv, err := httpadapter.NewServer(":0", views, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv
}

func do(srv *httpadapter.Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// --- operational endpoints ---

func TestHealthzReturns200(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := do(newTestServer(t, &mockView{readyErr: errors.New("extracts not loaded")}), http.MethodGet, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "extracts not loaded", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// --- pages ---

func TestIndexRedirectsToIntroduction(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/pages/introduction", rec.Header().Get("Location"))
}

func TestUnknownPathIs404(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIntroductionPageRendersMarkdown(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/pages/introduction")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Mitigating Fatal Collisions")
	// Sidebar lists every page.
	assert.Contains(t, rec.Body.String(), "Analyzing Fatal Collisions")
	assert.Contains(t, rec.Body.String(), "Conclusions and Recommendations")
}

func TestAnalysisPageListsYearOptions(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/pages/analysis")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="all">`)
	assert.Contains(t, body, `<option value="2021">`)
	assert.Contains(t, body, "county-chart")
}

func TestUnknownPageIs404(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/pages/whatever")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- view API ---

func TestCountyViewReturnsPayload(t *testing.T) {
	views := &mockView{}
	rec := do(newTestServer(t, views), http.MethodGet, "/api/views/county?year=2020")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2020", views.lastYear)

	var v render.ChoroplethView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, []string{"06001"}, v.Locations)
	assert.Equal(t, "YlOrRd", v.ColorScale)
}

func TestViewDefaultsToAllYears(t *testing.T) {
	views := &mockView{}
	rec := do(newTestServer(t, views), http.MethodGet, "/api/views/hourly")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", views.lastYear)
}

func TestInvalidYearIs400(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/api/views/hourly?year=20x1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "20x1")
}

func TestViewErrorIs500(t *testing.T) {
	rec := do(newTestServer(t, &mockView{viewErr: errors.New("geometry unreachable")}), http.MethodGet, "/api/views/county")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "geometry unreachable")
}

func TestDayOfWeekViewReturnsSevenBuckets(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/api/views/day-of-week?year=2020")

	assert.Equal(t, http.StatusOK, rec.Code)

	var v render.BarView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Len(t, v.Labels, 7)
	assert.Len(t, v.Values, 7)
}

// --- PNG charts ---

func TestHourlyPNG(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/charts/hourly.png?year=2020")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, len(rec.Body.Bytes()) > 8)
}

func TestPNGInvalidYearIs400(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/charts/day-of-week.png?year=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDHeaderSet(t *testing.T) {
	rec := do(newTestServer(t, &mockView{}), http.MethodGet, "/healthz")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
