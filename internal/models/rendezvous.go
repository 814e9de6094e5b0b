package models

import "time"

type RendezVous struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	VehicleID uint    `gorm:"not null" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"vehicle"`

	MecanicienID *uint `json:"mecanicien_id"`
	Mecanicien   *User `gorm:"foreignKey:MecanicienID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mecanicien,omitempty"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	DateHeure time.Time `gorm:"not null" json:"date_heure"`
	Statut    string    `gorm:"size:20;default:'en_attente'" json:"statut"`
	Notes     string    `gorm:"size:255" json:"notes"`

	// Renseigné quand le rendez-vous a été promu en réparation.
	ReparationID *uint `json:"reparation_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
