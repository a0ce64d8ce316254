package models

// User is an account row. Accounts are created on registration and never
// edited or deleted afterwards; the role is fixed at registration.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null"                 json:"username"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Address      string `gorm:"not null"                 json:"address"`
	Contact      string `gorm:"not null"                 json:"contact"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

// Product quantity is informational stock metadata; nothing decrements it.
// Image holds the uploaded filename and stays nil when no image was given.
type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null"                 json:"name"`
	Quantity uint    `json:"quantity"`
	Price    float64 `gorm:"not null"                 json:"price"`
	Image    *string `json:"image"`
}
