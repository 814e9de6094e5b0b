package servicerequest

import (
	"context"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

type AcceptInput struct {
	DemandeID    uint
	GarageID     uint
	PrixEstime   float64
	DureeEstimee float64
}

type AcceptDemande struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptDemande(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptDemande {
	return &AcceptDemande{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptDemande) Execute(
	ctx context.Context,
	in AcceptInput,
) (*models.DemandePrestation, error) {

	d, err := uc.repo.GetDemandeByID(ctx, in.DemandeID)
	if err != nil {
		return nil, httperr.ErrBusiness("demande_introuvable")
	}

	// Seul un utilisateur de rôle garage (ou admin) peut accepter.
	garage, err := uc.repo.GetGarageUser(ctx, in.GarageID)
	if err != nil {
		return nil, httperr.ErrBusiness("garage_introuvable")
	}

	now := timezone.Now()
	if err := domain.Accept(d, garage.ID, in.PrixEstime, in.DureeEstimee, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateDemande(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.GarageID,
		Action:   "demande_acceptee",
		Entity:   "demande_prestation",
		EntityID: &d.ID,
	})

	return d, nil
}
