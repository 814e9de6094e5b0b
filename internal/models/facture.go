package models

import "time"

type Facture struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Numero string `gorm:"size:40;uniqueIndex;not null" json:"numero"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ReparationID *uint       `json:"reparation_id"`
	Reparation   *Reparation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"reparation,omitempty"`

	DemandeID *uint              `json:"demande_id"`
	Demande   *DemandePrestation `gorm:"foreignKey:DemandeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"demande,omitempty"`

	TotalHT  *float64 `json:"total_ht"`
	TotalTTC *float64 `json:"total_ttc"`

	// Notes libres ; pour compatibilité avec les anciens consommateurs le
	// bloc "LIGNES:" y est toujours écrit à l'émission.
	Notes string `gorm:"type:text" json:"notes"`

	Lignes []FactureLigne `gorm:"foreignKey:FactureID" json:"lignes"`

	DateEmission time.Time `json:"date_emission"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ligne de facture normalisée, remplace l'encodage texte du champ notes.
type FactureLigne struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	FactureID uint `gorm:"not null;index" json:"facture_id"`

	Designation  string  `gorm:"size:200;not null" json:"designation"`
	Quantite     int     `gorm:"default:1" json:"quantite"`
	PrixUnitaire float64 `json:"prix_unitaire"`
}
