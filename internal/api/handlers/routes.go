package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"venue-route-service/internal/api/dto"
	"venue-route-service/internal/domain"
	"venue-route-service/internal/platform/obs"
	"venue-route-service/internal/ports"
	"venue-route-service/internal/services"
)

const (
	maxDestinations  = 64
	maxBatchRequests = 32
)

// RouteHandler plans walking routes through a venue's stalls.
type RouteHandler struct {
	Repo             ports.VenueRepository
	BatchConcurrency int
}

func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.Repo.GetVenue(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	start, dests, err := resolveRouteRequest(v, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	route, err := planRoute(r.Context(), v.Grid, start, dests)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(v.ID, route))
}

// PlanBatch plans several independent routes on one venue. Each entry
// reports its own route or error; the response is 200 unless the whole
// request is malformed.
func (h *RouteHandler) PlanBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Requests) == 0 {
		writeError(w, r, http.StatusBadRequest, "requests must not be empty")
		return
	}
	if len(req.Requests) > maxBatchRequests {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d requests per batch", maxBatchRequests))
		return
	}

	v, err := h.Repo.GetVenue(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	results := make([]dto.BatchRouteResult, len(req.Requests))
	planReqs := make([]services.PlanRequest, 0, len(req.Requests))
	slots := make([]int, 0, len(req.Requests))
	for i, rr := range req.Requests {
		start, dests, err := resolveRouteRequest(v, rr)
		if err != nil {
			results[i].Error = errorResponse(err)
			continue
		}
		planReqs = append(planReqs, services.PlanRequest{Start: start, Destinations: dests})
		slots = append(slots, i)
	}

	planned, err := planBatch(r.Context(), v.Grid, planReqs, h.BatchConcurrency)
	if err != nil {
		log.Printf("req_id=%s batch aborted venue_id=%s err=%v", obs.RequestID(r.Context()), v.ID, err)
		writeError(w, r, http.StatusServiceUnavailable, "request canceled")
		return
	}

	for j, pr := range planned {
		i := slots[j]
		if pr.Err != nil {
			results[i].Error = errorResponse(pr.Err)
			continue
		}
		res := toRouteResponse(v.ID, pr.Route)
		results[i].Route = &res
	}

	writeJSON(w, r, http.StatusOK, dto.BatchRouteResponse{VenueID: v.ID, Results: results})
}

// resolveRouteRequest turns a request body into planner input. Stall ids
// come first, in request order, followed by raw destinations.
func resolveRouteRequest(v *domain.Venue, req dto.RouteRequest) (domain.Position, []domain.Destination, error) {
	if req.Start == nil {
		return domain.Position{}, nil, badRequest("start is required")
	}
	start := domain.Position{X: req.Start.X, Y: req.Start.Y}

	if n := len(req.Stalls) + len(req.Destinations); n > maxDestinations {
		return domain.Position{}, nil, badRequest("%d destinations requested, at most %d allowed", n, maxDestinations)
	}

	dests, err := v.Destinations(req.Stalls)
	if err != nil {
		return domain.Position{}, nil, err
	}
	for _, d := range req.Destinations {
		p := domain.Position{X: d.X, Y: d.Y}
		ref := d.Ref
		if ref == "" {
			ref = p.String()
		}
		dests = append(dests, domain.Destination{Position: p, Ref: ref})
	}

	return start, dests, nil
}

func planRoute(ctx context.Context, grid *domain.Grid, start domain.Position, dests []domain.Destination) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "routes.PlanRoute")(&err)

	began := time.Now()
	route, err := services.PlanRoute(grid, start, dests)
	obs.RoutePlanDuration.Observe(time.Since(began).Seconds())
	observePlan(route, err)

	return route, err
}

func planBatch(ctx context.Context, grid *domain.Grid, reqs []services.PlanRequest, limit int) (_ []services.PlanResult, err error) {
	defer obs.Time(ctx, "routes.PlanRoutes")(&err)

	results, err := services.PlanRoutes(ctx, grid, reqs, limit)
	if err != nil {
		return nil, err
	}
	for _, pr := range results {
		observePlan(pr.Route, pr.Err)
	}
	return results, nil
}

func observePlan(route *domain.Route, err error) {
	switch {
	case err == nil:
		obs.ObservePlan(obs.OutcomeOK, len(route.Order))
	case errors.Is(err, domain.ErrInvalidPosition):
		obs.ObservePlan(obs.OutcomeInvalidPosition, 0)
	case errors.Is(err, domain.ErrNoPathFound):
		obs.ObservePlan(obs.OutcomeNoPath, 0)
	default:
		obs.ObservePlan(obs.OutcomeError, 0)
	}
}

func toRouteResponse(venueID string, route *domain.Route) dto.RouteResponse {
	res := dto.RouteResponse{
		VenueID:  venueID,
		Start:    toPositionDTO(route.Start),
		Distance: route.Distance,
		Order:    toPositionDTOs(route.Order),
		Visits:   make([]dto.VisitResponse, 0, len(route.Visits)),
		Steps:    toPositionDTOs(route.Steps),
		Legs:     make([]dto.LegResponse, 0, len(route.Legs)),
	}
	for _, vis := range route.Visits {
		refs := make([]string, 0, len(vis.Refs))
		for _, ref := range vis.Refs {
			if s, ok := ref.(string); ok {
				refs = append(refs, s)
				continue
			}
			refs = append(refs, fmt.Sprint(ref))
		}
		res.Visits = append(res.Visits, dto.VisitResponse{Position: toPositionDTO(vis.Position), Refs: refs})
	}
	for _, l := range route.Legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			From:      toPositionDTO(l.From),
			To:        toPositionDTO(l.To),
			StartStep: l.StartStep,
			EndStep:   l.EndStep,
			Length:    l.Length(),
		})
	}
	return res
}
