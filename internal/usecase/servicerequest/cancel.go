package servicerequest

import (
	"context"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

type CancelDemande struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelDemande(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelDemande {
	return &CancelDemande{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelDemande) Execute(
	ctx context.Context,
	demandeID uint,
	userID uint,
	role string,
) (*models.DemandePrestation, error) {

	d, err := uc.repo.GetDemandeByID(ctx, demandeID)
	if err != nil {
		return nil, httperr.ErrBusiness("demande_introuvable")
	}

	// Seuls le client propriétaire, le garage affecté ou un admin peuvent
	// annuler.
	if !canCancelAs(d, userID, role) {
		return nil, httperr.ErrBusiness("annulation_refusee")
	}

	now := timezone.Now()
	if err := domain.Cancel(d, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateDemande(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "demande_annulee",
		Entity:   "demande_prestation",
		EntityID: &d.ID,
	})

	return d, nil
}

func canCancelAs(d *models.DemandePrestation, userID uint, role string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return d.ClientID == userID
	case models.RoleGarage:
		return d.GarageID != nil && *d.GarageID == userID
	default:
		return false
	}
}
