package models

import (
	"slices"
	"strings"
	"time"
)

// User represents a storefront account. Wishlist and Cart hold Game IDs in insertion order.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Wishlist  []string  `json:"wishlist" gorm:"type:text;serializer:json"`
	Cart      []string  `json:"cart" gorm:"type:text;serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Contains reports whether gameID is present in list.
func Contains(list []string, gameID string) bool {
	return slices.Contains(list, gameID)
}

// Without returns a copy of list with every occurrence of gameID removed.
func Without(list []string, gameID string) []string {
	out := make([]string, 0, len(list))
	for _, id := range list {
		if id != gameID {
			out = append(out, id)
		}
	}
	return out
}

// EnsureLists replaces nil lists with empty ones so they serialize as [].
func (u *User) EnsureLists() {
	if u.Wishlist == nil {
		u.Wishlist = []string{}
	}
	if u.Cart == nil {
		u.Cart = []string{}
	}
}
