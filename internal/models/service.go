package models

import "time"

// Prestation du catalogue (vidange, freins, contrôle...).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nom         string  `gorm:"size:100;not null" json:"nom"`
	Description string  `gorm:"size:255" json:"description"`
	PrixIndique float64 `json:"prix_indique"`
	DureeMin    int     `json:"duree_min"`
	Actif       bool    `gorm:"default:true" json:"actif"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
