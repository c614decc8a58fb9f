package dto

// DestinationRequest is a raw grid destination. Ref is echoed back in the
// visit that covers it.
type DestinationRequest struct {
	X   int    `json:"x"`
	Y   int    `json:"y"`
	Ref string `json:"ref"`
}

type RouteRequest struct {
	Start        *PositionDTO         `json:"start"`
	Stalls       []string             `json:"stalls"`
	Destinations []DestinationRequest `json:"destinations"`
}

type BatchRouteRequest struct {
	Requests []RouteRequest `json:"requests"`
}

type VisitResponse struct {
	Position PositionDTO `json:"position"`
	Refs     []string    `json:"refs"`
}

type LegResponse struct {
	From      PositionDTO `json:"from"`
	To        PositionDTO `json:"to"`
	StartStep int         `json:"start_step"`
	EndStep   int         `json:"end_step"`
	Length    int         `json:"length"`
}

type RouteResponse struct {
	VenueID  string          `json:"venue_id"`
	Start    PositionDTO     `json:"start"`
	Distance int             `json:"distance"`
	Order    []PositionDTO   `json:"order"`
	Visits   []VisitResponse `json:"visits"`
	Steps    []PositionDTO   `json:"steps"`
	Legs     []LegResponse   `json:"legs"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type BatchRouteResult struct {
	Route *RouteResponse `json:"route,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

type BatchRouteResponse struct {
	VenueID string             `json:"venue_id"`
	Results []BatchRouteResult `json:"results"`
}
