package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dynamic-pathfinder/baseline"
	"dynamic-pathfinder/pathfinder"
	"dynamic-pathfinder/world"
)

type plannedRoute struct {
	path    pathfinder.Path
	planner string
	stats   *pathfinder.Stats
}

// searchConfig layers the request overrides over the defaults.
func (req RouteRequest) searchConfig() pathfinder.Config {
	cfg := pathfinder.DefaultConfig()
	if req.MaxVisits != nil {
		cfg.MaxVisits = *req.MaxVisits
	}
	if req.AngularGrain != 0 {
		cfg.AngularGrain = req.AngularGrain
	}
	if req.MovementGrain != 0 {
		cfg.MovementGrain = req.MovementGrain
	}
	cfg.MaxSteps = req.MaxSteps
	cfg.Logger = log.Default()
	return cfg
}

// planRoute runs the requested planner against w and records metrics and a
// trace span for it.
func planRoute(ctx context.Context, req RouteRequest, w *world.World) (plannedRoute, error) {
	planned := plannedRoute{planner: req.Planner}
	if planned.planner == "" {
		planned.planner = plannerBend
	}

	ctx, span := otel.Tracer("pathfinder").Start(ctx, "planRoute",
		trace.WithAttributes(
			attribute.String("planner", planned.planner),
			attribute.Int("obstacles", w.Len()),
			attribute.Bool("simplify", req.Simplify),
		),
	)
	defer span.End()

	began := time.Now()
	var err error
	switch planned.planner {
	case plannerBend:
		var res pathfinder.Result
		res, err = bend(ctx, req, w)
		planned.path = res.Path
		planned.stats = &res.Stats
		searchSteps.Observe(float64(res.Stats.Steps))
		span.SetAttributes(
			attribute.Int("steps", res.Stats.Steps),
			attribute.Int("spawned", res.Stats.Spawned),
			attribute.Int("abandoned", res.Stats.Abandoned),
		)
	case plannerVisibility:
		planned.path, err = baseline.Plan(ctx, req.Start, req.End, w, 0)
	default:
		err = fmt.Errorf("%w: unknown planner %q", pathfinder.ErrInvalidConfig, planned.planner)
	}
	routeDuration.WithLabelValues(planned.planner).Observe(time.Since(began).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		routeRequests.WithLabelValues(planned.planner, resultLabel(err)).Inc()
		return planned, err
	}

	if req.Simplify {
		before := len(planned.path)
		planned.path = pathfinder.Simplify[*world.Obstacle](w, planned.path)
		log.Printf("   Simplified: %d -> %d waypoints\n", before, len(planned.path))
	}

	span.SetAttributes(attribute.Int("waypoints", len(planned.path)))
	routeRequests.WithLabelValues(planned.planner, "found").Inc()
	routeWaypoints.Observe(float64(len(planned.path)))
	return planned, nil
}

func bend(ctx context.Context, req RouteRequest, w *world.World) (pathfinder.Result, error) {
	search, err := pathfinder.NewSearch[*world.Obstacle](w, req.Start, req.End, req.searchConfig())
	if err != nil {
		return pathfinder.Result{}, err
	}
	return search.Run(ctx)
}
