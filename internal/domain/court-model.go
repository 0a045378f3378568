package domain

type CourtType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TypeName string `gorm:"type:varchar(50);not null;uniqueIndex" json:"typeName"`
}

type Court struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ArenaID     uint   `gorm:"index;not null" json:"arenaId"`
	CourtTypeID uint   `gorm:"index;not null" json:"courtTypeId"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
}

// CourtRow is a court joined with the name of its court type.
type CourtRow struct {
	ID       uint
	Name     string
	TypeName string
}
