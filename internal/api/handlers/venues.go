package handlers

import (
	"net/http"

	"venue-route-service/internal/api/dto"
	"venue-route-service/internal/ports"
)

// VenueHandler exposes read-only venue layout endpoints.
type VenueHandler struct {
	Repo ports.VenueRepository
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	venues, err := h.Repo.ListVenues(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListVenuesResponse{
		Venues: make([]dto.VenueSummaryResponse, 0, len(venues)),
	}
	for _, v := range venues {
		res.Venues = append(res.Venues, dto.VenueSummaryResponse{
			VenueID:    v.ID,
			Name:       v.Name,
			Rows:       v.Rows,
			Cols:       v.Cols,
			StallCount: v.StallCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	v, err := h.Repo.GetVenue(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.VenueResponse{
		VenueID: v.ID,
		Name:    v.Name,
		Rows:    v.Grid.Rows(),
		Cols:    v.Grid.Cols(),
		Layout:  v.Grid.Lines(),
		Stalls:  make([]dto.StallResponse, 0, len(v.Stalls)),
	}
	for _, s := range v.Stalls {
		b := s.Bounds()
		res.Stalls = append(res.Stalls, dto.StallResponse{
			StallID:  s.ID,
			Name:     s.Name,
			Kind:     string(s.Kind),
			Origin:   toPositionDTO(b.Origin),
			Width:    b.Width,
			Height:   b.Height,
			Entrance: toPositionDTO(s.Entrance()),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
