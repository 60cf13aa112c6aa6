package domain

// Session maps an opaque bearer token to its owning user. Rows have no
// expiry; they live until the user logs out. A user may hold any number of
// concurrent sessions.
type Session struct {
	Token  string `gorm:"primaryKey;size:64"` // 32 random bytes, hex encoded
	UserID uint   `gorm:"not null"`
}
