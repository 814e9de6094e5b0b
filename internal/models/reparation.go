package models

import "time"

type Reparation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VehicleID uint    `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"vehicle"`

	MecanicienID *uint `json:"mecanicien_id"`
	Mecanicien   *User `gorm:"foreignKey:MecanicienID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mecanicien,omitempty"`

	DescriptionProbleme string  `gorm:"type:text" json:"description_probleme"`
	DescriptionTravaux  string  `gorm:"type:text" json:"description_travaux"`
	DureeHeures         float64 `json:"duree_heures"`

	Statut string `gorm:"size:20;default:'en_cours'" json:"statut"`

	// Les deux validations sont indépendantes : celle du mécanicien remet
	// les drapeaux client à zéro, l'inverse n'est pas vrai.
	ValideeParMecanicien bool `gorm:"default:false" json:"validee_par_mecanicien"`
	ConfirmeParClient    bool `gorm:"default:false" json:"confirme_par_client"`
	ValideeParClient     bool `gorm:"default:false" json:"validee_par_client"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
