package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dynamic-pathfinder/pathfinder"
	"dynamic-pathfinder/world"
)

const (
	plannerBend       = "bend"
	plannerVisibility = "visibility"

	// maxRandomCount bounds POST /world/random
	maxRandomCount = 10000
)

type RouteRequest struct {
	Start         pathfinder.Point `json:"start"`
	End           pathfinder.Point `json:"end"`
	Planner       string           `json:"planner,omitempty"`  // "bend" (default) or "visibility"
	Simplify      bool             `json:"simplify,omitempty"` // Drop waypoints whose neighbours see each other
	MaxVisits     *int             `json:"maxVisits,omitempty"`
	AngularGrain  float64          `json:"angularGrain,omitempty"`
	MovementGrain float64          `json:"movementGrain,omitempty"`
	MaxSteps      int              `json:"maxSteps,omitempty"`
	Obstacles     []world.Polygon  `json:"obstacles,omitempty"` // Optional: route against these instead of the loaded world
}

type RouteResponse struct {
	Path    pathfinder.Path   `json:"path"`
	Success bool              `json:"success"`
	Planner string            `json:"planner"`
	Message string            `json:"message,omitempty"`
	Length  float64           `json:"length,omitempty"`
	Stats   *pathfinder.Stats `json:"stats,omitempty"`
}

type WorldRequest struct {
	Type      string          `json:"type,omitempty"` // "FeatureCollection" selects GeoJSON
	Obstacles []world.Polygon `json:"obstacles,omitempty"`
}

type RandomWorldRequest struct {
	Count     int                `json:"count"`
	Seed      int64              `json:"seed"`
	MinX      float64            `json:"minX"`
	MinY      float64            `json:"minY"`
	MaxX      float64            `json:"maxX"`
	MaxY      float64            `json:"maxY"`
	MaxSize   float64            `json:"maxSize"`
	KeepClear []pathfinder.Point `json:"keepClear,omitempty"`
}

// server holds the obstacle world routes are planned against. Routing reads
// a snapshot, so replacing the world never disturbs a running search.
type server struct {
	mu           sync.RWMutex
	world        *world.World
	routeTimeout time.Duration
}

func newServer(w *world.World, routeTimeout time.Duration) *server {
	if w == nil {
		w = world.New()
	}
	return &server{world: w, routeTimeout: routeTimeout}
}

func (s *server) snapshot() *world.World {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world
}

func (s *server) setWorld(w *world.World) {
	s.mu.Lock()
	s.world = w
	s.mu.Unlock()
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/route/geojson", corsMiddleware(s.routeGeoJSONHandler))
	mux.HandleFunc("/world", corsMiddleware(s.worldHandler))
	mux.HandleFunc("/world/random", corsMiddleware(s.randomWorldHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to encode response: %v\n", err)
	}
}

// decodeRoute reads a route request and picks the world to plan in.
func (s *server) decodeRoute(w http.ResponseWriter, r *http.Request) (RouteRequest, *world.World, bool) {
	var req RouteRequest
	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return req, nil, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, nil, false
	}

	log.Printf("   Start: (%.3f, %.3f)\n", req.Start.X, req.Start.Y)
	log.Printf("   End:   (%.3f, %.3f)\n", req.End.X, req.End.Y)

	snapshot := s.snapshot()
	if len(req.Obstacles) > 0 {
		inline, err := world.FromPolygons(req.Obstacles)
		if err != nil {
			log.Printf("❌ Invalid obstacles: %v\n", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return req, nil, false
		}
		snapshot = inline
	}
	log.Printf("   Obstacles: %d\n", snapshot.Len())
	return req, snapshot, true
}

// POST /route - Compute a route between start and end
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Route request received")
	defer log.Println("========================================")

	req, snapshot, ok := s.decodeRoute(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.routeTimeout)
	defer cancel()

	planned, err := planRoute(ctx, req, snapshot)
	response := RouteResponse{
		Path:    planned.path,
		Success: err == nil,
		Planner: planned.planner,
		Stats:   planned.stats,
	}

	switch {
	case err == nil:
		response.Length = planned.path.Length()
		log.Printf("✅ Path found with %d waypoints\n", len(planned.path))
		log.Printf("   Length: %.3f\n", response.Length)
		for i, p := range planned.path {
			log.Printf("      %d: (%.3f, %.3f)\n", i, p.X, p.Y)
		}
		writeJSON(w, http.StatusOK, response)
	case errors.Is(err, pathfinder.ErrInvalidConfig):
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("❌ No path found: %v\n", err)
		response.Message = err.Error()
		writeJSON(w, http.StatusOK, response)
	}
}

// POST /route/geojson - Compute a route and return it as a GeoJSON feature
func (s *server) routeGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 GeoJSON route request received")
	defer log.Println("========================================")

	req, snapshot, ok := s.decodeRoute(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.routeTimeout)
	defer cancel()

	planned, err := planRoute(ctx, req, snapshot)
	switch {
	case errors.Is(err, pathfinder.ErrInvalidConfig):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("❌ No path found: %v\n", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	log.Printf("✅ Path found with %d waypoints\n", len(planned.path))
	feature := world.PathFeature(planned.path)
	feature.Properties["planner"] = planned.planner

	data, err := feature.MarshalJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(data); err != nil {
		log.Printf("⚠️  Failed to write response: %v\n", err)
	}
}

// GET /world - Current obstacles as GeoJSON
// POST /world - Replace obstacles from polygons or a GeoJSON feature collection
func (s *server) worldHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data, err := s.snapshot().FeatureCollection().MarshalJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		if _, err := w.Write(data); err != nil {
			log.Printf("⚠️  Failed to write response: %v\n", err)
		}
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Println("========================================")
	log.Println("🗺️  World update received")
	defer log.Println("========================================")

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var req WorldRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var next *world.World
	if req.Type == "FeatureCollection" {
		next, err = world.LoadGeoJSON(data)
	} else {
		next, err = world.FromPolygons(req.Obstacles)
	}
	if err != nil {
		log.Printf("❌ Invalid obstacles: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.setWorld(next)
	worldObstacles.Set(float64(next.Len()))
	log.Printf("✅ World replaced: %d obstacles\n", next.Len())

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"obstacles": next.Len(),
	})
}

func (req RandomWorldRequest) validate() error {
	switch {
	case req.Count < 0 || req.Count > maxRandomCount:
		return fmt.Errorf("count %d outside [0, %d]", req.Count, maxRandomCount)
	case req.MaxSize < 0:
		return fmt.Errorf("maxSize %g is negative", req.MaxSize)
	case req.MinX > req.MaxX || req.MinY > req.MaxY:
		return fmt.Errorf("bounds (%g, %g)-(%g, %g) are inverted", req.MinX, req.MinY, req.MaxX, req.MaxY)
	}
	return nil
}

// POST /world/random - Replace obstacles with random rectangles
func (s *server) randomWorldHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🎲 Random world request received")
	defer log.Println("========================================")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RandomWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Set defaults
	if req.Count == 0 {
		req.Count = 100
	}
	if req.MaxX == req.MinX && req.MaxY == req.MinY {
		req.MinX, req.MinY, req.MaxX, req.MaxY = 0, -50, 90, 40
	}
	if req.MaxSize == 0 {
		req.MaxSize = 10
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	if err := req.validate(); err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng := rand.New(rand.NewSource(req.Seed))
	bound := orb.Bound{Min: orb.Point{req.MinX, req.MinY}, Max: orb.Point{req.MaxX, req.MaxY}}
	next := world.RandomRectangles(rng, req.Count, bound, req.MaxSize, req.KeepClear...)

	s.setWorld(next)
	worldObstacles.Set(float64(next.Len()))
	log.Printf("✅ World replaced: %d random rectangles (seed %d)\n", next.Len(), req.Seed)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"obstacles": next.Len(),
		"seed":      req.Seed,
	})
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"obstacles": s.snapshot().Len(),
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	worldFile := flag.String("world", "", "GeoJSON file with obstacles to load on startup")
	routeTimeout := flag.Duration("route-timeout", 2*time.Second, "upper bound on one route computation")
	flag.Parse()

	log.Println("========================================")
	log.Println("🚀 Dynamic Convex Pathfinder Server")
	log.Println("========================================")

	initial := world.New()
	if *worldFile != "" {
		loaded, err := world.LoadGeoJSONFile(*worldFile)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		initial = loaded
		log.Printf("✅ Loaded %d obstacles from %s\n", initial.Len(), *worldFile)
	} else {
		log.Println("ℹ️  Starting with an empty world")
		log.Println("   POST /world or /world/random to add obstacles")
	}
	worldObstacles.Set(float64(initial.Len()))
	log.Println("")

	s := newServer(initial, *routeTimeout)

	log.Printf("Server starting on %s\n", *addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /world              - Replace obstacles (polygons or GeoJSON)")
	log.Println("  GET  /world              - Current obstacles as GeoJSON")
	log.Println("  POST /world/random       - Replace obstacles with random rectangles")
	log.Println("  POST /route              - Compute route with start and end points")
	log.Println("  POST /route/geojson      - Compute route as a GeoJSON LineString")
	log.Println("  GET  /health             - Check server status")
	log.Println("  GET  /metrics            - Prometheus metrics")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(*addr, s.routes()); err != nil {
		log.Fatal(err)
	}
}
