package service

import (
	"context"
	"fmt"

	"monastery360/backend/go/internal/routing/geo"
	"monastery360/backend/go/internal/routing/planner"
)

// PlanRoute builds an itinerary over every site with known coordinates.
// The caller-supplied start is honored only when routing.useRequestStart
// is enabled; otherwise the configured origin anchors the tour.
func (s *Service) PlanRoute(ctx context.Context, budgetMinutes int, startLat, startLng *float64, mode geo.Mode) (planner.Itinerary, error) {
	monasteries, err := s.store.ListMonasteries()
	if err != nil {
		return planner.Itinerary{}, err
	}

	var stops []planner.Stop
	for _, m := range monasteries {
		if m.Info == nil || m.Info.Latitude == nil || m.Info.Longitude == nil {
			continue
		}

		highlightSecs := make([]int, 0, len(m.Highlights))
		for _, h := range m.Highlights {
			highlightSecs = append(highlightSecs, h.DurationSec)
		}

		description := fmt.Sprintf("%s, founded %s.", m.Location, m.Founded)
		if m.Info.Description != nil && *m.Info.Description != "" {
			description = *m.Info.Description
		}

		stops = append(stops, planner.Stop{
			ID:           m.ID,
			Title:        m.Name,
			Description:  description,
			Point:        geo.Point{Lat: *m.Info.Latitude, Lng: *m.Info.Longitude},
			VisitMinutes: planner.EstimateVisitMinutes(highlightSecs, m.Info.AudioDurationMin),
		})
	}

	origin := geo.Point{Lat: s.cfg.Routing.OriginLat, Lng: s.cfg.Routing.OriginLng}
	if s.cfg.Routing.UseRequestStart && startLat != nil && startLng != nil {
		origin = geo.Point{Lat: *startLat, Lng: *startLng}
	}

	return s.planner.Plan(ctx, stops, origin, budgetMinutes, mode), nil
}
