package models

import "time"

// Article de la boutique (pièces, accessoires, véhicules d'occasion).
type Produit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nom         string  `gorm:"size:100;not null" json:"nom"`
	Description string  `gorm:"size:255" json:"description"`
	Prix        float64 `json:"prix"`
	Stock       int     `json:"stock"`
	Categorie   string  `gorm:"size:50" json:"categorie"`
	Actif       bool    `gorm:"default:true" json:"actif"`

	Photos []ProduitPhoto `gorm:"foreignKey:ProduitID" json:"photos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProduitPhoto struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProduitID uint `gorm:"not null;index" json:"produit_id"`

	ObjectKey   string `gorm:"size:255;not null" json:"object_key"`
	URL         string `gorm:"size:500" json:"url"`
	ContentType string `gorm:"size:50" json:"content_type"`

	CreatedAt time.Time `json:"created_at"`
}
