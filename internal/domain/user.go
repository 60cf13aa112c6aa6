package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Username string `gorm:"unique;not null"` // Unique username
	Passhash string `gorm:"not null"`        // Bcrypt password hash
	Coins    int64  `gorm:"not null;default:100"`
	Exp      int64  `gorm:"not null;default:0"`
	Level    int64  `gorm:"not null;default:1"` // Never mutated by any route
	Admin    bool   `gorm:"not null;default:false"`
}
