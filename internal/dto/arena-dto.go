package dto

type ArenaSummary struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	City         string  `json:"city"`
	Address      string  `json:"address"`
	PricePerHour int     `json:"pricePerHour"`
	Availability string  `json:"availability"`
	Rating       float64 `json:"rating"`
	Image        *string `json:"image,omitempty"`
}

type ArenaDetail struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	Rating       float64             `json:"rating"`
	PricePerHour int                 `json:"pricePerHour"`
	Availability string              `json:"availability"`
	Timing       string              `json:"timing"`
	Amenities    []string            `json:"amenities"`
	Description  string              `json:"description"`
	Rules        []string            `json:"rules"`
	Images       []string            `json:"images"`
	Courts       map[string][]string `json:"courts"`
}

type CreateArenaRequest struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	PricePerHour int      `json:"pricePerHour"`
	Availability string   `json:"availability"`
	Timing       string   `json:"timing"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Rules        []string `json:"rules"`
}

type AddCourtRequest struct {
	CourtType string `json:"courtType"`
	Name      string `json:"name"`
}

type CourtResponse struct {
	ID        uint   `json:"id"`
	ArenaID   uint   `json:"arenaId"`
	CourtType string `json:"courtType"`
	Name      string `json:"name"`
}

type ArenaImageResponse struct {
	ID        uint   `json:"id"`
	ArenaID   uint   `json:"arenaId"`
	ImagePath string `json:"imagePath"`
}

type CourtTypeResponse struct {
	ID       uint   `json:"id"`
	TypeName string `json:"typeName"`
}

type TimeSlotsResponse struct {
	Timing string   `json:"timing"`
	Slots  []string `json:"slots"`
}
