package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/itinerary"
)

// Itinerary is the body of GET /api/trips/{tripId}/itinerary.
type Itinerary struct {
	Trip        Trip           `json:"trip"`
	Days        []ItineraryDay `json:"days"`
	Unscheduled []Activity     `json:"unscheduled"`
}

// ItineraryDay is one calendar day of the plan. Destination is null only when
// the trip has no destinations; DestinationSource then reads "unresolved".
type ItineraryDay struct {
	Day               int                `json:"day"`
	Date              openapi_types.Date `json:"date"`
	Destination       *Destination       `json:"destination"`
	DestinationSource itinerary.Source   `json:"destination_source"`
	Activities        []Activity         `json:"activities"`
}

// GetItinerary handles GET /api/trips/{tripId}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	trip, plan, err := s.itineraries.Plan(r.Context(), userID, tripID)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}

	resp := Itinerary{
		Trip:        s.tripToResponse(trip),
		Days:        make([]ItineraryDay, len(plan.Days)),
		Unscheduled: activitiesToResponse(plan.Unscheduled),
	}
	for i, d := range plan.Days {
		day := ItineraryDay{
			Day:               d.Number,
			Date:              openapi_types.Date{Time: d.Date},
			DestinationSource: d.Destination.Source,
			Activities:        activitiesToResponse(d.Activities),
		}
		if d.Destination.Resolved() {
			dest := destinationToResponse(*d.Destination.Destination)
			day.Destination = &dest
		}
		resp.Days[i] = day
	}
	writeJSON(w, http.StatusOK, resp)
}
