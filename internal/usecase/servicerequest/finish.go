package servicerequest

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	invdomain "github.com/AtelierAutoPro/garage-manager/internal/domain/invoice"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type FinishInput struct {
	DemandeID uint
	GarageID  uint

	PrixMainOeuvre float64
	Lignes         []invdomain.Ligne
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

// FinishDemande clôt une demande en_cours : la facture (avec ses lignes) et
// le passage à terminee sont écrits dans une seule transaction pour ne jamais
// laisser une demande terminée sans facture.
type FinishDemande struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinishDemande(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinishDemande {
	return &FinishDemande{
		repo:  repo,
		audit: audit,
	}
}

func (uc *FinishDemande) Execute(
	ctx context.Context,
	in FinishInput,
) (*models.Facture, error) {

	d, err := uc.repo.GetDemandeByID(ctx, in.DemandeID)
	if err != nil {
		return nil, httperr.ErrBusiness("demande_introuvable")
	}

	if d.GarageID == nil || *d.GarageID != in.GarageID {
		return nil, httperr.ErrBusiness("demande_autre_garage")
	}

	now := timezone.Now()
	if err := domain.Finish(d, now); err != nil {
		return nil, err
	}

	// Lignes normalisées : main d'œuvre d'abord, puis les pièces.
	lignes := []models.FactureLigne{{
		Designation:  invdomain.LaborLabel,
		Quantite:     1,
		PrixUnitaire: in.PrixMainOeuvre,
	}}

	ht := in.PrixMainOeuvre
	for _, l := range in.Lignes {
		lignes = append(lignes, models.FactureLigne{
			Designation:  l.Designation,
			Quantite:     1,
			PrixUnitaire: l.Montant,
		})
		ht += l.Montant
	}
	ttc := ht * (1 + invdomain.TVARate)

	f := &models.Facture{
		Numero:       nextNumero(),
		ClientID:     d.ClientID,
		DemandeID:    &d.ID,
		TotalHT:      &ht,
		TotalTTC:     &ttc,
		Notes:        invdomain.EncodeLines(in.Notes, in.PrixMainOeuvre, in.Lignes),
		Lignes:       lignes,
		DateEmission: now,
	}

	if err := uc.repo.FinishWithInvoice(ctx, d, f); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.GarageID,
		Action:   "demande_terminee",
		Entity:   "facture",
		EntityID: &f.ID,
	})

	return f, nil
}

func nextNumero() string {
	return "FAC-" + strings.ToUpper(uuid.NewString()[:8])
}
