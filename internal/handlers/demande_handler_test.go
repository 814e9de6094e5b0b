package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	infraRepo "github.com/AtelierAutoPro/garage-manager/internal/infra/repository"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	ucdemande "github.com/AtelierAutoPro/garage-manager/internal/usecase/servicerequest"
)

func newDemandeHandler(db *gorm.DB) *DemandeHandler {
	repo := infraRepo.NewDemandeGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	return NewDemandeHandler(
		db,
		dispatcher,
		nil,
		ucdemande.NewAcceptDemande(repo, dispatcher),
		ucdemande.NewStartDemande(repo, dispatcher),
		ucdemande.NewFinishDemande(repo, dispatcher),
		ucdemande.NewCancelDemande(repo, dispatcher),
	)
}

func seedDemandeRows(t *testing.T, db *gorm.DB, statut domain.Status) (models.DemandePrestation, models.User, models.User) {
	t.Helper()

	client := models.User{Nom: "Durand", Email: fmt.Sprintf("dclient-%s@test.fr", t.Name()), PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	garage := models.User{Nom: "Garage du Centre", Email: fmt.Sprintf("dgarage-%s@test.fr", t.Name()), PasswordHash: "x", Role: models.RoleGarage}
	require.NoError(t, db.Create(&garage).Error)

	vehicle := models.Vehicle{ClientID: client.ID, Marque: "Renault", Modele: "Megane", Immatriculation: "GH-321-IJ-" + t.Name()}
	require.NoError(t, db.Create(&vehicle).Error)

	service := models.Service{Nom: "Diagnostic", Actif: true}
	require.NoError(t, db.Create(&service).Error)

	d := models.DemandePrestation{
		ClientID:  client.ID,
		VehicleID: vehicle.ID,
		ServiceID: service.ID,
		Statut:    string(statut),
	}
	if statut != domain.StatusEnAttente {
		d.GarageID = &garage.ID
	}
	require.NoError(t, db.Create(&d).Error)

	return d, client, garage
}

// Un diagnostic gratuit s'accepte avec un prix estimé de 0.
func TestAccepterDemandeAcceptsPrixZero(t *testing.T) {
	db := setupTestDB(t)
	d, _, garage := seedDemandeRows(t, db, domain.StatusEnAttente)

	h := newDemandeHandler(db)
	r := newTestRouter()
	r.PATCH("/demandes/:id/accepter", authAs(garage.ID, models.RoleGarage), h.Accepter)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/demandes/%d/accepter", d.ID),
		strings.NewReader(`{"prix_estime":0,"duree_estimee":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var out models.DemandePrestation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, string(domain.StatusAcceptee), out.Statut)
	assert.Equal(t, 0.0, out.PrixEstime)
}

func TestTerminerDemandeAcceptsMainOeuvreZero(t *testing.T) {
	db := setupTestDB(t)
	d, _, garage := seedDemandeRows(t, db, domain.StatusEnCours)

	h := newDemandeHandler(db)
	r := newTestRouter()
	r.PATCH("/demandes/:id/terminer", authAs(garage.ID, models.RoleGarage), h.Terminer)

	body := `{"prix_main_oeuvre":0,"lignes":[{"designation":"Geste commercial","montant":0}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/demandes/%d/terminer", d.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var f models.Facture
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
	require.NotNil(t, f.TotalHT)
	assert.Equal(t, 0.0, *f.TotalHT)

	// Sans montant de main d'œuvre, la requête est refusée.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/demandes/%d/terminer", d.ID), strings.NewReader(`{"notes":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnulerDemandeRefusedForUnrelatedClient(t *testing.T) {
	db := setupTestDB(t)
	d, _, _ := seedDemandeRows(t, db, domain.StatusEnCours)

	autre := models.User{Nom: "Martin", Email: fmt.Sprintf("autre-%s@test.fr", t.Name()), PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&autre).Error)

	h := newDemandeHandler(db)
	r := newTestRouter()
	r.PATCH("/demandes/:id/annuler", authAs(autre.ID, models.RoleClient), h.Annuler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/demandes/%d/annuler", d.ID), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "annulation_refusee")

	var reloaded models.DemandePrestation
	require.NoError(t, db.First(&reloaded, d.ID).Error)
	assert.Equal(t, string(domain.StatusEnCours), reloaded.Statut)
}

func TestAnnulerDemandeByOwner(t *testing.T) {
	db := setupTestDB(t)
	d, client, _ := seedDemandeRows(t, db, domain.StatusEnAttente)

	h := newDemandeHandler(db)
	r := newTestRouter()
	r.PATCH("/demandes/:id/annuler", authAs(client.ID, models.RoleClient), h.Annuler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/demandes/%d/annuler", d.ID), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var out models.DemandePrestation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, string(domain.StatusAnnulee), out.Statut)
}
