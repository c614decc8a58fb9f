package dto

type PositionDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type VenueSummaryResponse struct {
	VenueID    string `json:"venue_id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	StallCount int    `json:"stall_count"`
}

type ListVenuesResponse struct {
	Venues []VenueSummaryResponse `json:"venues"`
}

type StallResponse struct {
	StallID  string      `json:"stall_id"`
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	Origin   PositionDTO `json:"origin"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Entrance PositionDTO `json:"entrance"`
}

type VenueResponse struct {
	VenueID string          `json:"venue_id"`
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Cols    int             `json:"cols"`
	Layout  []string        `json:"layout"`
	Stalls  []StallResponse `json:"stalls"`
}
