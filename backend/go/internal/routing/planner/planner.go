package planner

import (
	"context"
	"fmt"
	"math"

	"monastery360/backend/go/internal/routing/directions"
	"monastery360/backend/go/internal/routing/geo"
	"monastery360/backend/go/pkg/logger"
)

// Stop is a visitable site with coordinates and an estimated visit
// duration.
type Stop struct {
	ID           uint
	Title        string
	Description  string
	Point        geo.Point
	VisitMinutes int
}

// Step is one entry of an itinerary, either travel between stops or a
// visit at one. Coordinates are set on visit steps only.
type Step struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Lat              *float64 `json:"lat,omitempty"`
	Lng              *float64 `json:"lng,omitempty"`
	EstimatedMinutes int      `json:"estimated_minutes"`
}

// Itinerary is the planned sequence of steps plus the stitched path for
// map rendering, when any provider produced geometry.
type Itinerary struct {
	Steps []Step      `json:"steps"`
	Path  []geo.Point `json:"path,omitempty"`
}

const (
	defaultVisitMinutes = 20
	minVisitMinutes     = 10
	// Edges shorter than this are treated as "already there".
	zeroTravelKm = 0.05
)

// EstimateVisitMinutes derives a stop's visit duration. Highlight
// durations win when present; otherwise the configured intro length;
// otherwise a default. The result never drops below ten minutes.
func EstimateVisitMinutes(highlightSecs []int, introMinutes *int) int {
	if len(highlightSecs) > 0 {
		total := 0
		for _, s := range highlightSecs {
			total += s
		}
		minutes := int(math.Round(float64(total) / 60))
		if minutes < minVisitMinutes {
			return minVisitMinutes
		}
		return minutes
	}
	if introMinutes != nil {
		if *introMinutes < minVisitMinutes {
			return minVisitMinutes
		}
		return *introMinutes
	}
	return defaultVisitMinutes
}

// Planner builds greedy nearest-neighbour itineraries under a time
// budget. It is best-effort: it always returns at least one step and
// the step durations never exceed the budget.
type Planner struct {
	chain *directions.Chain
	log   *logger.Logger
}

// New creates a Planner over the given directions chain.
func New(chain *directions.Chain, log *logger.Logger) *Planner {
	return &Planner{chain: chain, log: log}
}

// Plan builds an itinerary from origin over the candidate stops.
// A budget at or under the loop floor gets the generic exploration step:
// the selection loop could never admit a stop, and clipping a real visit
// into so few minutes would misrepresent it.
func (p *Planner) Plan(ctx context.Context, stops []Stop, origin geo.Point, budgetMinutes int, mode geo.Mode) Itinerary {
	if budgetMinutes < 0 {
		budgetMinutes = 0
	}
	if len(stops) == 0 || budgetMinutes <= 5 {
		return genericItinerary(budgetMinutes)
	}

	candidates := make([]Stop, len(stops))
	copy(candidates, stops)

	var it Itinerary
	current := origin
	remaining := budgetMinutes
	firstEdge := true

	for len(candidates) > 0 && remaining > 5 {
		idx := nearestIndex(candidates, current)
		stop := candidates[idx]

		leg := p.edge(ctx, current, stop.Point, mode)
		if firstEdge && geo.Haversine(current, stop.Point) < zeroTravelKm {
			leg = directions.Leg{}
		}

		if leg.Minutes+stop.VisitMinutes > remaining {
			break
		}

		if leg.Minutes > 0 {
			it.Steps = append(it.Steps, Step{
				Title:            fmt.Sprintf("Travel to %s", stop.Title),
				Description:      fmt.Sprintf("About %d min by %s.", leg.Minutes, mode),
				EstimatedMinutes: leg.Minutes,
			})
		}
		it.Steps = append(it.Steps, visitStep(stop, stop.VisitMinutes))

		it.Path = stitchPath(it.Path, leg.Path)
		remaining -= leg.Minutes + stop.VisitMinutes
		current = stop.Point
		firstEdge = false
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}

	if len(it.Steps) == 0 {
		// Nothing fit: visit the nearest stop anyway, clipped to what
		// little budget there is.
		idx := nearestIndex(stops, origin)
		stop := stops[idx]
		minutes := stop.VisitMinutes
		if minutes > budgetMinutes {
			minutes = budgetMinutes
		}
		it.Steps = append(it.Steps, visitStep(stop, minutes))
	}
	return it
}

// edge resolves one travel leg through the chain. The chain ends in the
// geometric estimator, so failure here means a broken chain setup; the
// planner degrades to a zero-cost edge rather than failing the request.
func (p *Planner) edge(ctx context.Context, from, to geo.Point, mode geo.Mode) directions.Leg {
	leg, err := p.chain.Route(ctx, from, to, mode)
	if err != nil {
		p.log.WithError(err).Warn("edge cost unavailable, assuming zero travel")
		return directions.Leg{}
	}
	return leg
}

func visitStep(stop Stop, minutes int) Step {
	lat, lng := stop.Point.Lat, stop.Point.Lng
	return Step{
		Title:            fmt.Sprintf("Visit %s", stop.Title),
		Description:      stop.Description,
		Lat:              &lat,
		Lng:              &lng,
		EstimatedMinutes: minutes,
	}
}

func genericItinerary(budgetMinutes int) Itinerary {
	minutes := 30
	if budgetMinutes < minutes {
		minutes = budgetMinutes
	}
	return Itinerary{Steps: []Step{{
		Title:            "Explore the monastery complex",
		Description:      "Wander the grounds at your own pace.",
		EstimatedMinutes: minutes,
	}}}
}

// nearestIndex picks the candidate with the smallest great-circle
// distance from pos. Ties keep the earlier candidate.
func nearestIndex(candidates []Stop, pos geo.Point) int {
	best := 0
	bestKm := math.Inf(1)
	for i, c := range candidates {
		if km := geo.Haversine(pos, c.Point); km < bestKm {
			best, bestKm = i, km
		}
	}
	return best
}

// stitchPath appends a segment, dropping its first vertex when the
// accumulated path already ends at the join.
func stitchPath(acc, segment []geo.Point) []geo.Point {
	if len(segment) == 0 {
		return acc
	}
	if len(acc) > 0 {
		segment = segment[1:]
	}
	return append(acc, segment...)
}
