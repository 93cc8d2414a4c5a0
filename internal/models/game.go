package models

// Game represents a catalog entry. Games are only written by the seeder.
type Game struct {
	ID               string   `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name             string   `json:"name" gorm:"type:varchar(255);not null;index" validate:"required"`
	Description      string   `json:"description" gorm:"type:text;not null" validate:"required"`
	Platforms        []string `json:"platforms" gorm:"type:text;serializer:json" validate:"required,min=1,dive,required"`
	ReleaseDate      string   `json:"releaseDate" gorm:"type:varchar(50);not null" validate:"required"`
	Price            float64  `json:"price" validate:"gte=0"`
	MetacriticRating float64  `json:"metacriticRating" validate:"gte=0"`
	EsrbRating       string   `json:"esrbRating" gorm:"type:varchar(50);not null" validate:"required"`
	Genres           []string `json:"genres" gorm:"type:text;serializer:json" validate:"required,min=1,dive,required"`
	Images           []string `json:"images" gorm:"type:text;serializer:json" validate:"required,min=1,dive,required"`
	Videos           []string `json:"videos" gorm:"type:text;serializer:json" validate:"required,min=1,dive,required"`
}
