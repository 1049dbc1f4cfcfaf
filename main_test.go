package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"dynamic-pathfinder/pathfinder"
	"dynamic-pathfinder/world"
)

const boxObstacles = `[{"id": "box", "vertices": [{"x": 4.5, "y": -0.5}, {"x": 5.5, "y": -0.5}, {"x": 5.5, "y": 0.5}, {"x": 4.5, "y": 0.5}]}]`

func testServer(t *testing.T, w *world.World) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(newServer(w, 2*time.Second).routes())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestRouteInlineObstacles(t *testing.T) {
	ts := testServer(t, nil)

	resp := post(t, ts.URL+"/route", `{"start": {"x": 0, "y": 0}, "end": {"x": 10, "y": 0}, "obstacles": `+boxObstacles+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	var got RouteResponse
	decode(t, resp, &got)

	if !got.Success || got.Planner != plannerBend {
		t.Fatalf("got %+v", got)
	}
	if len(got.Path) != 3 || got.Path[0] != pathfinder.Pt(0, 0) || got.Path[2] != pathfinder.Pt(10, 0) {
		t.Errorf("got path %v", got.Path)
	}
	if got.Stats == nil || got.Stats.Steps != 2 {
		t.Errorf("got stats %+v, want 2 steps", got.Stats)
	}
	if got.Length <= 10 {
		t.Errorf("got length %f, want a detour", got.Length)
	}
}

func TestRouteVisibilityPlanner(t *testing.T) {
	ts := testServer(t, world.New(world.Rect("box", 4.5, -0.5, 5.5, 0.5)))

	resp := post(t, ts.URL+"/route", `{"start": {"x": 0, "y": 0}, "end": {"x": 10, "y": 0}, "planner": "visibility", "simplify": true}`)
	var got RouteResponse
	decode(t, resp, &got)
	if !got.Success || got.Planner != plannerVisibility || len(got.Path) != 4 {
		t.Errorf("got %+v", got)
	}
}

func TestRouteNotFound(t *testing.T) {
	ts := testServer(t, world.New(world.Rect("box", 4.5, -0.5, 5.5, 0.5)))

	resp := post(t, ts.URL+"/route", `{"start": {"x": 0, "y": 0}, "end": {"x": 5, "y": 0}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	var got RouteResponse
	decode(t, resp, &got)
	if got.Success || got.Message == "" || got.Path != nil {
		t.Errorf("got %+v", got)
	}

	resp = post(t, ts.URL+"/route/geojson", `{"start": {"x": 0, "y": 0}, "end": {"x": 5, "y": 0}}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("geojson: got status %d, want 404", resp.StatusCode)
	}
}

func TestRouteBadRequests(t *testing.T) {
	ts := testServer(t, nil)

	tests := []struct {
		name, body string
	}{
		{"unknown planner", `{"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}, "planner": "teleport"}`},
		{"bad grain", `{"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}, "angularGrain": 3}`},
		{"negative visits", `{"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}, "maxVisits": -1}`},
		{"degenerate obstacle", `{"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}, "obstacles": [{"vertices": [{"x": 0, "y": 0}, {"x": 1, "y": 1}]}]}`},
		{"malformed", `{"start": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := post(t, ts.URL+"/route", tt.body); resp.StatusCode != http.StatusBadRequest {
				t.Errorf("got status %d, want 400", resp.StatusCode)
			}
		})
	}

	resp, err := http.Get(ts.URL + "/route")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /route: got status %d, want 405", resp.StatusCode)
	}
}

func TestRouteZeroVisits(t *testing.T) {
	ts := testServer(t, world.New(world.Rect("box", 4.5, -0.5, 5.5, 0.5)))

	resp := post(t, ts.URL+"/route", `{"start": {"x": 0, "y": 0}, "end": {"x": 10, "y": 0}, "maxVisits": 0}`)
	var got RouteResponse
	decode(t, resp, &got)
	if got.Success {
		t.Errorf("maxVisits 0 found %v", got.Path)
	}
}

func TestRouteGeoJSON(t *testing.T) {
	ts := testServer(t, world.New(world.Rect("box", 4.5, -0.5, 5.5, 0.5)))

	resp := post(t, ts.URL+"/route/geojson", `{"start": {"x": 0, "y": 0}, "end": {"x": 10, "y": 0}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	var raw json.RawMessage
	decode(t, resp, &raw)
	f, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		t.Fatal(err)
	}
	line, ok := f.Geometry.(orb.LineString)
	if !ok || len(line) != 3 {
		t.Fatalf("got geometry %#v", f.Geometry)
	}
	if f.Properties["planner"] != plannerBend {
		t.Errorf("got properties %v", f.Properties)
	}
}

func TestWorldReplace(t *testing.T) {
	ts := testServer(t, nil)

	resp := post(t, ts.URL+"/world", `{"obstacles": `+boxObstacles+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	assertObstacles(t, ts, 1)

	collection := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"id": "a"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
		{"type": "Feature", "properties": {"id": "b"}, "geometry": {"type": "Polygon", "coordinates": [[[5,5],[6,5],[6,6],[5,5]]]}}
	]}`
	if resp := post(t, ts.URL+"/world", collection); resp.StatusCode != http.StatusOK {
		t.Fatalf("geojson: got status %d", resp.StatusCode)
	}
	assertObstacles(t, ts, 2)

	get, err := http.Get(ts.URL + "/world")
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	var raw json.RawMessage
	decode(t, get, &raw)
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 2 || fc.Features[0].Properties["id"] != "a" {
		t.Errorf("got %d features", len(fc.Features))
	}

	if resp := post(t, ts.URL+"/world", `{"obstacles": [{"vertices": []}]}`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("degenerate: got status %d, want 400", resp.StatusCode)
	}
	assertObstacles(t, ts, 2)
}

func TestRandomWorld(t *testing.T) {
	ts := testServer(t, nil)

	resp := post(t, ts.URL+"/world/random", `{"count": 25, "seed": 3, "keepClear": [{"x": 0, "y": 0}, {"x": 100, "y": 0}]}`)
	var got struct {
		Success   bool  `json:"success"`
		Obstacles int   `json:"obstacles"`
		Seed      int64 `json:"seed"`
	}
	decode(t, resp, &got)
	if !got.Success || got.Obstacles == 0 || got.Seed != 3 {
		t.Errorf("got %+v", got)
	}
	assertObstacles(t, ts, got.Obstacles)
}

func TestRandomWorldRejectsBadInput(t *testing.T) {
	ts := testServer(t, world.New(world.Rect("box", 4.5, -0.5, 5.5, 0.5)))

	tests := []struct {
		name, body string
	}{
		{"negative count", `{"count": -5}`},
		{"huge count", `{"count": 1000000000}`},
		{"negative size", `{"count": 5, "maxSize": -1}`},
		{"inverted x", `{"count": 5, "minX": 10, "maxX": 0, "minY": 0, "maxY": 10}`},
		{"inverted y", `{"count": 5, "minX": 0, "maxX": 10, "minY": 10, "maxY": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := post(t, ts.URL+"/world/random", tt.body); resp.StatusCode != http.StatusBadRequest {
				t.Errorf("got status %d, want 400", resp.StatusCode)
			}
		})
	}

	// The loaded world is untouched
	assertObstacles(t, ts, 1)
}

func assertObstacles(t *testing.T, ts *httptest.Server, want int) {
	t.Helper()
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got struct {
		Status    string `json:"status"`
		Obstacles int    `json:"obstacles"`
	}
	decode(t, resp, &got)
	if got.Status != "ready" || got.Obstacles != want {
		t.Errorf("health: got %+v, want %d obstacles", got, want)
	}
}

func TestResultLabel(t *testing.T) {
	for err, want := range map[error]string{
		pathfinder.ErrNotFound:      "not_found",
		pathfinder.ErrStepBudget:    "step_budget",
		pathfinder.ErrInvalidConfig: "invalid",
	} {
		if got := resultLabel(err); got != want {
			t.Errorf("%v: got %q, want %q", err, got, want)
		}
	}
}
