package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type DemandeGormRepository struct {
	db *gorm.DB
}

func NewDemandeGormRepository(db *gorm.DB) *DemandeGormRepository {
	return &DemandeGormRepository{db: db}
}

// --------------------------------------------------
// Demande
// --------------------------------------------------

func (r *DemandeGormRepository) GetDemandeByID(
	ctx context.Context,
	id uint,
) (*models.DemandePrestation, error) {

	var d models.DemandePrestation
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Service").
		First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DemandeGormRepository) UpdateDemande(
	ctx context.Context,
	d *models.DemandePrestation,
) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// --------------------------------------------------
// Garage
// --------------------------------------------------

func (r *DemandeGormRepository) GetGarageUser(
	ctx context.Context,
	garageID uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role IN ?", garageID, []string{models.RoleGarage, models.RoleAdmin}).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Facturation
// --------------------------------------------------

// FinishWithInvoice écrit la facture, ses lignes et le nouveau statut de la
// demande dans une seule transaction.
func (r *DemandeGormRepository) FinishWithInvoice(
	ctx context.Context,
	d *models.DemandePrestation,
	f *models.Facture,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		if err := tx.Save(d).Error; err != nil {
			return err
		}
		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*DemandeGormRepository)(nil)
