package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"f1statsboard/pkg/charts"
	"f1statsboard/pkg/datasets"
	"f1statsboard/pkg/series"
	"f1statsboard/pkg/standings"
)

const driversFixture = `[
	{"name":"Alice","points":18,"laps":40},
	{"name":"Bob","points":25,"laps":57},
	{"name":"Reference","points":500,"laps":100}
]`

func newTestApp(t *testing.T, payloads map[string]string) (*App, *mux.Router) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	dm := datasets.NewManager(context.Background(), ts.URL)
	r := mux.NewRouter()
	app := NewApp(context.Background(), r, dm, series.ReferenceDriverName)
	return app, r
}

func getStandings(t *testing.T, r *mux.Router, url string) StandingsResponse {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", url, w.Code)
	}
	var resp StandingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding standings: %v", err)
	}
	return resp
}

func TestStandingsOpenSortedByPointsDescending(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})

	resp := getStandings(t, r, "/api/standings")

	if resp.Sort.Column != PointsColumn || resp.Sort.Direction != standings.Descending {
		t.Fatalf("sort state = %+v, want points column descending", resp.Sort)
	}
	if len(resp.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(resp.Rows))
	}
	if resp.Rows[0][0] != "Reference" || resp.Rows[1][0] != "Bob" || resp.Rows[2][0] != "Alice" {
		t.Fatalf("row order = %s, %s, %s", resp.Rows[0][0], resp.Rows[1][0], resp.Rows[2][0])
	}
}

func TestStandingsSortTogglesDirection(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})

	resp := getStandings(t, r, "/api/standings?sort=0")
	if resp.Sort.Column != 0 || resp.Sort.Direction != standings.Ascending {
		t.Fatalf("first sort state = %+v, want column 0 ascending", resp.Sort)
	}
	if resp.Rows[0][0] != "Alice" {
		t.Fatalf("first row = %s, want Alice", resp.Rows[0][0])
	}

	resp = getStandings(t, r, "/api/standings?sort=0")
	if resp.Sort.Direction != standings.Descending {
		t.Fatalf("second sort state = %+v, want descending", resp.Sort)
	}
	if resp.Rows[0][0] != "Reference" {
		t.Fatalf("first row = %s, want Reference", resp.Rows[0][0])
	}
}

func TestStandingsRejectsBadSortColumn(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})

	for _, q := range []string{"?sort=99", "?sort=-1", "?sort=laps"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/standings"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET /api/standings%s = %d, want 400", q, w.Code)
		}
	}
}

func TestEmptyDriversRenderEmptyPanels(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": `[]`})

	resp := getStandings(t, r, "/api/standings")
	if len(resp.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(resp.Rows))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/charts/points", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/charts/points = %d, want 200 for empty dataset", w.Code)
	}
	var cfg charts.Config
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decoding chart config: %v", err)
	}
	if len(cfg.Datasets) != 1 || len(cfg.Datasets[0].Data) != 0 {
		t.Fatalf("config datasets = %+v, want one empty dataset", cfg.Datasets)
	}
}

func TestFailedDatasetOnlyBlanksItsOwnPanel(t *testing.T) {
	_, r := newTestApp(t, map[string]string{
		"/drivers.json":        driversFixture,
		"/driversbattles.json": `[{"pair":"Alice vs Bob","qualScore_1":3,"qualScore_2":-7}]`,
	})

	checks := []struct {
		url  string
		want int
	}{
		{"/api/standings", http.StatusOK},
		{"/api/charts/points", http.StatusOK},
		{"/api/charts/laps", http.StatusOK},
		{"/api/charts/battles", http.StatusOK},
		{"/api/charts/battlessprint", http.StatusNotFound},
		{"/api/pitstops", http.StatusNotFound},
	}
	for _, c := range checks {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, c.url, nil))
		if w.Code != c.want {
			t.Errorf("GET %s = %d, want %d", c.url, w.Code, c.want)
		}
	}
}

func TestPointsChartExcludesSentinel(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/charts/points", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/charts/points = %d, want 200", w.Code)
	}
	var cfg charts.Config
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decoding chart config: %v", err)
	}
	for _, label := range cfg.Labels {
		if label == series.ReferenceDriverName {
			t.Fatalf("chart labels %v include the reference row", cfg.Labels)
		}
	}
	if len(cfg.Labels) != 2 || cfg.Labels[0] != "Bob" {
		t.Fatalf("labels = %v, want [Bob Alice]", cfg.Labels)
	}
}

func TestPitstopsReturnsRankedTop(t *testing.T) {
	_, r := newTestApp(t, map[string]string{
		"/pitstops.json": `[
			{"driver":"A","team":"T","time":22.1},
			{"driver":"B","team":"T","time":19.9},
			{"driver":"C","team":"T","time":25.0},
			{"driver":"D","team":"T","time":18.4},
			{"driver":"E","team":"T","time":20.0},
			{"driver":"F","team":"T","time":30.2}
		]`,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pitstops", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/pitstops = %d, want 200", w.Code)
	}
	var ranked []series.RankedPitstop
	if err := json.Unmarshal(w.Body.Bytes(), &ranked); err != nil {
		t.Fatalf("decoding pitstops: %v", err)
	}
	if len(ranked) != 5 {
		t.Fatalf("ranked = %d entries, want 5", len(ranked))
	}
	if ranked[0].Driver != "D" || ranked[0].Time != "18.400s" {
		t.Fatalf("fastest stop = %+v", ranked[0])
	}
}

func TestStandingsTextRendersTable(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/standings.txt", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /standings.txt = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Driver") || !strings.Contains(body, "Bob") {
		t.Fatalf("rendered table missing expected content:\n%s", body)
	}
}

func TestPageServesDashboard(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<table") {
		t.Fatal("dashboard page missing standings table markup")
	}
}
