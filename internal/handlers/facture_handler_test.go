package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	invdomain "github.com/AtelierAutoPro/garage-manager/internal/domain/invoice"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

type factureResponse struct {
	Facture models.Facture           `json:"facture"`
	Lignes  []invdomain.DecodedLigne `json:"lignes"`
	Totaux  invdomain.Totals         `json:"totaux"`
}

func seedClient(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	client := models.User{Nom: "Durand", Email: fmt.Sprintf("client-%s@test.fr", t.Name()), PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func getFacture(t *testing.T, db *gorm.DB, id uint) factureResponse {
	t.Helper()

	h := NewFactureHandler(db, nil)
	r := newTestRouter()
	r.GET("/factures/:id", authAs(1, models.RoleAdmin), h.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/factures/%d", id), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var out factureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// Une facture ancienne n'a pas de lignes en base : le bloc LIGNES: des notes
// est décodé et les totaux recalculés à partir des lignes.
func TestGetFactureDecodesLegacyNotes(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)

	f := models.Facture{
		Numero:       "FAC-LEGACY1",
		ClientID:     client.ID,
		Notes:        "Révision complète\nLIGNES:\n1 x Main d'œuvre @ 80\n1 x Filtre @ 45.5",
		DateEmission: timezone.Now(),
	}
	require.NoError(t, db.Create(&f).Error)

	out := getFacture(t, db, f.ID)

	require.Len(t, out.Lignes, 2)
	assert.Equal(t, "Main d'œuvre", out.Lignes[0].Designation)
	assert.Equal(t, 80.0, out.Lignes[0].PrixUnitaire)
	assert.Equal(t, "Filtre", out.Lignes[1].Designation)

	assert.InDelta(t, 125.5, out.Totaux.HT, 1e-9)
	assert.InDelta(t, 150.6, out.Totaux.TTC, 1e-9)
}

// Quand des lignes normalisées existent, elles font foi même si les notes
// contiennent un bloc différent.
func TestGetFacturePrefersStoredLines(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)

	ht := 100.0
	f := models.Facture{
		Numero:   "FAC-ROWS1",
		ClientID: client.ID,
		TotalHT:  &ht,
		Notes:    "LIGNES:\n1 x Ancienne ligne @ 999",
		Lignes: []models.FactureLigne{
			{Designation: "Plaquettes", Quantite: 2, PrixUnitaire: 50},
		},
		DateEmission: timezone.Now(),
	}
	require.NoError(t, db.Create(&f).Error)

	out := getFacture(t, db, f.ID)

	require.Len(t, out.Lignes, 1)
	assert.Equal(t, "Plaquettes", out.Lignes[0].Designation)
	assert.Equal(t, 100.0, out.Lignes[0].Total)

	// HT explicite : le TTC est dérivé à 20 %.
	assert.Equal(t, 100.0, out.Totaux.HT)
	assert.InDelta(t, 120.0, out.Totaux.TTC, 1e-9)
}

func TestGetFactureIntrouvable(t *testing.T) {
	db := setupTestDB(t)

	h := NewFactureHandler(db, nil)
	r := newTestRouter()
	r.GET("/factures/:id", authAs(1, models.RoleAdmin), h.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/factures/424242", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "facture_introuvable")
}

func TestListFacturesClientOnlySeesOwn(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db)

	autre := models.User{Nom: "Martin", Email: fmt.Sprintf("autre-%s@test.fr", t.Name()), PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&autre).Error)

	require.NoError(t, db.Create(&models.Facture{Numero: "FAC-MINE01", ClientID: client.ID, DateEmission: timezone.Now()}).Error)
	require.NoError(t, db.Create(&models.Facture{Numero: "FAC-THEIRS1", ClientID: autre.ID, DateEmission: timezone.Now()}).Error)

	h := NewFactureHandler(db, nil)
	r := newTestRouter()
	r.GET("/factures", authAs(client.ID, models.RoleClient), h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/factures", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var out []models.Facture
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "FAC-MINE01", out[0].Numero)
}
