package servicerequest

import (
	"context"

	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type Repository interface {
	// -------- Demande --------
	GetDemandeByID(
		ctx context.Context,
		id uint,
	) (*models.DemandePrestation, error)

	UpdateDemande(
		ctx context.Context,
		d *models.DemandePrestation,
	) error

	// -------- Garage --------
	GetGarageUser(
		ctx context.Context,
		garageID uint,
	) (*models.User, error)

	// -------- Facturation (transactionnelle) --------
	// Crée la facture avec ses lignes et passe la demande à terminee dans
	// une seule transaction.
	FinishWithInvoice(
		ctx context.Context,
		d *models.DemandePrestation,
		f *models.Facture,
	) error
}
