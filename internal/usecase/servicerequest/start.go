package servicerequest

import (
	"context"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type StartDemande struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartDemande(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartDemande {
	return &StartDemande{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartDemande) Execute(
	ctx context.Context,
	demandeID uint,
	garageID uint,
) (*models.DemandePrestation, error) {

	d, err := uc.repo.GetDemandeByID(ctx, demandeID)
	if err != nil {
		return nil, httperr.ErrBusiness("demande_introuvable")
	}

	if d.GarageID == nil || *d.GarageID != garageID {
		return nil, httperr.ErrBusiness("demande_autre_garage")
	}

	if err := domain.Start(d); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateDemande(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &garageID,
		Action:   "demande_demarree",
		Entity:   "demande_prestation",
		EntityID: &d.ID,
	})

	return d, nil
}
