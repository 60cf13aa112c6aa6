package domain

// Page holds a user's raw markup. At most one page per owner; saves
// overwrite the row in place. Counters grow without per-visitor dedup.
type Page struct {
	Owner    uint   `gorm:"primaryKey"` // Owning user id
	HTML     string `gorm:"type:text"`  // Stored verbatim, escaped only at render time
	Likes    int64  `gorm:"not null;default:0"`
	Dislikes int64  `gorm:"not null;default:0"`
}
