package domain

type Arena struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	OwnerID      uint       `gorm:"index;not null" json:"ownerId"`
	Name         string     `gorm:"type:varchar(150);not null" json:"name"`
	City         string     `gorm:"type:varchar(100);not null" json:"city"`
	Address      string     `gorm:"type:varchar(255)" json:"address"`
	PricePerHour int        `gorm:"not null;default:0" json:"pricePerHour"`
	Availability string     `gorm:"type:varchar(50)" json:"availability"`
	Rating       float64    `gorm:"not null;default:0" json:"rating"`
	Timing       string     `gorm:"type:varchar(50)" json:"timing"`
	Amenities    StringList `json:"amenities"`
	Description  string     `gorm:"type:text" json:"description"`
	Rules        StringList `json:"rules"`
}

type ArenaImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArenaID   uint   `gorm:"index;not null" json:"arenaId"`
	ImagePath string `gorm:"type:varchar(512);not null" json:"imagePath"`
}

// ArenaListing is an arena row joined with its primary (lowest id) image.
type ArenaListing struct {
	ID           uint
	Name         string
	City         string
	Address      string
	PricePerHour int
	Availability string
	Rating       float64
	Image        *string
}
