package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

func TestBoutiqueCreateThenList(t *testing.T) {
	db := setupTestDB(t)

	h := NewProduitHandler(db)
	r := newTestRouter()
	r.POST("/boutique/produits", authAs(1, models.RoleGarage), h.Create)
	r.GET("/boutique/produits", h.List)

	body := `{"nom":"Filtre à huile","description":"Pour moteurs essence","prix":12.5,"stock":40,"categorie":"Pieces"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/boutique/produits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pieces", created.Categorie)
	assert.True(t, created.Actif)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/boutique/produits", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data  []models.Produit `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Filtre à huile", list.Data[0].Nom)
}

func TestBoutiqueCreateAcceptsPrixZero(t *testing.T) {
	db := setupTestDB(t)

	h := NewProduitHandler(db)
	r := newTestRouter()
	r.POST("/boutique/produits", authAs(1, models.RoleGarage), h.Create)

	// Un article offert vaut 0, le binding ne doit pas le confondre avec un
	// prix manquant.
	body := `{"nom":"Diagnostic offert","prix":0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/boutique/produits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Produit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 0.0, created.Prix)

	// Sans prix du tout, la création est refusée.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/boutique/produits", strings.NewReader(`{"nom":"Sans prix"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoutiqueListFilters(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Produit{Nom: "Filtre à huile", Categorie: "pieces", Prix: 12.5, Actif: true}).Error)
	require.NoError(t, db.Create(&models.Produit{Nom: "Clio occasion", Categorie: "vehicules", Prix: 4500, Actif: true}).Error)
	require.NoError(t, db.Create(&models.Produit{Nom: "Ancien article", Categorie: "pieces", Prix: 3, Actif: false}).Error)

	h := NewProduitHandler(db)
	r := newTestRouter()
	r.GET("/boutique/produits", h.List)

	fetch := func(query string) []models.Produit {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boutique/produits"+query, nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var list struct {
			Data []models.Produit `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		return list.Data
	}

	assert.Len(t, fetch(""), 3)
	assert.Len(t, fetch("?categorie=pieces"), 2)
	assert.Len(t, fetch("?categorie=pieces&actif=true"), 1)

	parQuery := fetch("?query=clio")
	require.Len(t, parQuery, 1)
	assert.Equal(t, "Clio occasion", parQuery[0].Nom)
}

func TestBoutiqueListEmptyIsArray(t *testing.T) {
	db := setupTestDB(t)

	h := NewProduitHandler(db)
	r := newTestRouter()
	r.GET("/boutique/produits", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boutique/produits", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
	assert.Contains(t, w.Body.String(), `"total":0`)
}
