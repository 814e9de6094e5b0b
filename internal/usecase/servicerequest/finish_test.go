package servicerequest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	dbpkg "github.com/AtelierAutoPro/garage-manager/internal/db"
	invdomain "github.com/AtelierAutoPro/garage-manager/internal/domain/invoice"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	infraRepo "github.com/AtelierAutoPro/garage-manager/internal/infra/repository"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedDemande(t *testing.T, db *gorm.DB, statut domain.Status, garageID *uint) (*models.DemandePrestation, models.User) {
	t.Helper()

	client := models.User{Nom: "Durand", Email: fmt.Sprintf("client-%s@test.fr", strings.ReplaceAll(t.Name(), "/", "_")), PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	garage := models.User{Nom: "Garage du Centre", Email: fmt.Sprintf("garage-%s@test.fr", strings.ReplaceAll(t.Name(), "/", "_")), PasswordHash: "x", Role: models.RoleGarage}
	require.NoError(t, db.Create(&garage).Error)

	vehicle := models.Vehicle{ClientID: client.ID, Marque: "Renault", Modele: "Clio", Immatriculation: "AB-123-CD-" + strings.ReplaceAll(t.Name(), "/", "_")}
	require.NoError(t, db.Create(&vehicle).Error)

	service := models.Service{Nom: "Vidange", Actif: true}
	require.NoError(t, db.Create(&service).Error)

	d := models.DemandePrestation{
		ClientID:  client.ID,
		VehicleID: vehicle.ID,
		ServiceID: service.ID,
		Statut:    string(statut),
	}
	if garageID == nil {
		d.GarageID = &garage.ID
	} else {
		d.GarageID = garageID
	}
	require.NoError(t, db.Create(&d).Error)

	return &d, garage
}

func newFinishUC(db *gorm.DB) *FinishDemande {
	repo := infraRepo.NewDemandeGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))
	return NewFinishDemande(repo, dispatcher)
}

func TestFinishCreatesInvoiceAndClosesDemande(t *testing.T) {
	db := setupTestDB(t)
	d, garage := seedDemande(t, db, domain.StatusEnCours, nil)

	uc := newFinishUC(db)

	f, err := uc.Execute(context.Background(), FinishInput{
		DemandeID:      d.ID,
		GarageID:       garage.ID,
		PrixMainOeuvre: 80,
		Lignes:         []invdomain.Ligne{{Designation: "Filtre", Montant: 45.5}},
		Notes:          "RAS",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.Numero, "FAC-"))
	require.NotNil(t, f.TotalHT)
	require.NotNil(t, f.TotalTTC)
	assert.InDelta(t, 125.5, *f.TotalHT, 1e-9)
	assert.InDelta(t, 150.6, *f.TotalTTC, 1e-9)

	// Le bloc legacy est toujours écrit dans les notes.
	assert.Contains(t, f.Notes, invdomain.Marker)
	assert.Contains(t, f.Notes, "1 x Main d'œuvre @ 80")
	assert.Contains(t, f.Notes, "1 x Filtre @ 45.5")

	var lignes []models.FactureLigne
	require.NoError(t, db.Where("facture_id = ?", f.ID).Order("id ASC").Find(&lignes).Error)
	require.Len(t, lignes, 2)
	assert.Equal(t, invdomain.LaborLabel, lignes[0].Designation)
	assert.Equal(t, 80.0, lignes[0].PrixUnitaire)
	assert.Equal(t, "Filtre", lignes[1].Designation)

	var reloaded models.DemandePrestation
	require.NoError(t, db.First(&reloaded, d.ID).Error)
	assert.Equal(t, string(domain.StatusTerminee), reloaded.Statut)
	assert.NotNil(t, reloaded.TermineeAt)
}

func TestFinishRejectedWhenNotEnCours(t *testing.T) {
	db := setupTestDB(t)
	d, garage := seedDemande(t, db, domain.StatusEnAttente, nil)

	uc := newFinishUC(db)

	_, err := uc.Execute(context.Background(), FinishInput{
		DemandeID:      d.ID,
		GarageID:       garage.ID,
		PrixMainOeuvre: 80,
	})
	assert.True(t, httperr.IsBusiness(err, "transition_invalide"))

	// Aucune facture ne doit exister.
	var count int64
	require.NoError(t, db.Model(&models.Facture{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFinishRejectedForAnotherGarage(t *testing.T) {
	db := setupTestDB(t)
	other := uint(9999)
	d, garage := seedDemande(t, db, domain.StatusEnCours, &other)

	uc := newFinishUC(db)

	_, err := uc.Execute(context.Background(), FinishInput{
		DemandeID:      d.ID,
		GarageID:       garage.ID,
		PrixMainOeuvre: 80,
	})
	assert.True(t, httperr.IsBusiness(err, "demande_autre_garage"))
}

func TestAcceptThenStart(t *testing.T) {
	db := setupTestDB(t)
	d, garage := seedDemande(t, db, domain.StatusEnAttente, nil)

	repo := infraRepo.NewDemandeGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	acceptUC := NewAcceptDemande(repo, dispatcher)
	startUC := NewStartDemande(repo, dispatcher)

	accepted, err := acceptUC.Execute(context.Background(), AcceptInput{
		DemandeID:    d.ID,
		GarageID:     garage.ID,
		PrixEstime:   200,
		DureeEstimee: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAcceptee), accepted.Statut)
	assert.Equal(t, 200.0, accepted.PrixEstime)

	started, err := startUC.Execute(context.Background(), d.ID, garage.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusEnCours), started.Statut)

	// Un second démarrage est refusé.
	_, err = startUC.Execute(context.Background(), d.ID, garage.ID)
	assert.True(t, httperr.IsBusiness(err, "transition_invalide"))
}
