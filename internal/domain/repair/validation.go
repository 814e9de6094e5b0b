package repair

import "github.com/AtelierAutoPro/garage-manager/internal/models"

// Statuts d'une réparation.
const (
	StatusEnCours = "en_cours"
	StatusTermine = "termine"
)

// ValidateByMechanic pose le drapeau mécanicien et remet à zéro les deux
// drapeaux côté client : une réparation revalidée par l'atelier doit être
// reconfirmée par le client.
func ValidateByMechanic(r *models.Reparation) {
	r.ValideeParMecanicien = true
	r.ConfirmeParClient = false
	r.ValideeParClient = false
}

// ValidateByClient pose les drapeaux client sans toucher à celui du
// mécanicien. L'asymétrie avec ValidateByMechanic est voulue.
func ValidateByClient(r *models.Reparation) {
	r.ConfirmeParClient = true
	r.ValideeParClient = true
}
