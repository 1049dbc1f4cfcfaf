package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dynamic-pathfinder/pathfinder"
)

var (
	// routeRequests counts route computations by planner and outcome
	routeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_route_requests_total",
		Help: "Total route computations by planner and result",
	}, []string{"planner", "result"})

	routeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathfinder_route_duration_seconds",
		Help:    "Route computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"planner"})

	// searchSteps tracks branches processed per bending search
	searchSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_search_steps",
		Help:    "Branches processed per bending search",
		Buckets: prometheus.ExponentialBuckets(1, 2, 16),
	})

	routeWaypoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_route_waypoints",
		Help:    "Waypoints per found route",
		Buckets: []float64{2, 3, 4, 5, 8, 12, 20, 50},
	})

	worldObstacles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathfinder_world_obstacles",
		Help: "Obstacles in the loaded world",
	})
)

// resultLabel classifies a planning error for metrics.
func resultLabel(err error) string {
	switch {
	case errors.Is(err, pathfinder.ErrNotFound):
		return "not_found"
	case errors.Is(err, pathfinder.ErrStepBudget):
		return "step_budget"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, pathfinder.ErrInvalidConfig):
		return "invalid"
	}
	return "error"
}
