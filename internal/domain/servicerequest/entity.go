package servicerequest

import (
	"time"

	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(d *models.DemandePrestation, garageID uint, prixEstime, dureeEstimee float64, now time.Time) error {
	if err := CanAccept(Status(d.Statut)); err != nil {
		return err
	}

	d.Statut = string(StatusAcceptee)
	d.GarageID = &garageID
	d.PrixEstime = prixEstime
	d.DureeEstime = dureeEstimee
	d.AccepteeAt = &now
	return nil
}

func Start(d *models.DemandePrestation) error {
	if err := CanStart(Status(d.Statut)); err != nil {
		return err
	}

	d.Statut = string(StatusEnCours)
	return nil
}

func Finish(d *models.DemandePrestation, now time.Time) error {
	if err := CanFinish(Status(d.Statut)); err != nil {
		return err
	}

	d.Statut = string(StatusTerminee)
	d.TermineeAt = &now
	return nil
}

func Cancel(d *models.DemandePrestation, now time.Time) error {
	if err := CanCancel(Status(d.Statut)); err != nil {
		return err
	}

	d.Statut = string(StatusAnnulee)
	d.AnnuleeAt = &now
	return nil
}
