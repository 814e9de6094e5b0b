package models

import "time"

// Rôles portés par un utilisateur. Une seule identité avec un tag de rôle,
// le profil garage vit dans une table annexe.
const (
	RoleAdmin  = "admin"
	RoleMecano = "mecanicien"
	RoleClient = "client"
	RoleGarage = "garage"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nom          string `gorm:"size:100;not null" json:"nom"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Telephone    string `gorm:"size:20" json:"telephone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profil propre aux utilisateurs de rôle "garage", une ligne par user.
type GarageProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	RaisonSociale string  `gorm:"size:100" json:"raison_sociale"`
	Adresse       string  `gorm:"size:255" json:"adresse"`
	Siret         string  `gorm:"size:20" json:"siret"`
	TauxHoraire   float64 `gorm:"default:30" json:"taux_horaire"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
