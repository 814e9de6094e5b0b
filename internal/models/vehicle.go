package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	Marque          string `gorm:"size:50;not null" json:"marque"`
	Modele          string `gorm:"size:50;not null" json:"modele"`
	Annee           int    `json:"annee"`
	Immatriculation string `gorm:"size:20;uniqueIndex;not null" json:"immatriculation"`
	Kilometrage     int    `json:"kilometrage"`
	Carburant       string `gorm:"size:20" json:"carburant"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
