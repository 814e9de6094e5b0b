package servicerequest

import "github.com/AtelierAutoPro/garage-manager/internal/httperr"

// ===============================
// DemandePrestation Status
// ===============================

type Status string

const (
	StatusEnAttente Status = "en_attente"
	StatusAcceptee  Status = "acceptee"
	StatusEnCours   Status = "en_cours"
	StatusTerminee  Status = "terminee"
	StatusAnnulee   Status = "annulee"
)

// ===============================
// Validations
// ===============================

// L'API d'origine laissait l'UI seule garder ces transitions ; ici chaque
// transition est vérifiée côté serveur.

func CanAccept(current Status) error {
	if current != StatusEnAttente {
		return httperr.ErrBusiness("transition_invalide")
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusAcceptee {
		return httperr.ErrBusiness("transition_invalide")
	}
	return nil
}

func CanFinish(current Status) error {
	if current != StatusEnCours {
		return httperr.ErrBusiness("transition_invalide")
	}
	return nil
}

func CanCancel(current Status) error {
	if current == StatusTerminee || current == StatusAnnulee {
		return httperr.ErrBusiness("transition_invalide")
	}
	return nil
}

func InitialStatus() Status {
	return StatusEnAttente
}
