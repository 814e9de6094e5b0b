package models

import "time"

// DemandePrestation : demande client → garage, pipeline
// en_attente → acceptee → en_cours → terminee (ou annulee).
type DemandePrestation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	VehicleID uint    `gorm:"not null" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"vehicle"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	GarageID *uint `gorm:"index" json:"garage_id"`
	Garage   *User `gorm:"foreignKey:GarageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"garage,omitempty"`

	Statut      string  `gorm:"size:20;default:'en_attente'" json:"statut"`
	Description string  `gorm:"type:text" json:"description"`
	PrixEstime  float64 `json:"prix_estime"`
	DureeEstime float64 `json:"duree_estimee"`

	AccepteeAt *time.Time `json:"acceptee_at"`
	TermineeAt *time.Time `json:"terminee_at"`
	AnnuleeAt  *time.Time `json:"annulee_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
