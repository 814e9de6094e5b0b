package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/httpresp"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type ProduitHandler struct {
	db *gorm.DB
}

func NewProduitHandler(db *gorm.DB) *ProduitHandler {
	return &ProduitHandler{db: db}
}

// --------- Requests ---------

// Prix est un pointeur : un article offert (0) reste une valeur valide que
// le binding "required" rejetterait sur un float nu.
type CreateProduitRequest struct {
	Nom         string   `json:"nom" binding:"required"`
	Description string   `json:"description"`
	Prix        *float64 `json:"prix" binding:"required"`
	Stock       int      `json:"stock"`
	Categorie   string   `json:"categorie"`
}

type UpdateProduitRequest struct {
	Nom         *string  `json:"nom,omitempty"`
	Description *string  `json:"description,omitempty"`
	Prix        *float64 `json:"prix,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Categorie   *string  `json:"categorie,omitempty"`
	Actif       *bool    `json:"actif,omitempty"`
}

// --------- Handlers ---------

func (h *ProduitHandler) List(c *gin.Context) {
	categorie := strings.ToLower(strings.TrimSpace(c.Query("categorie")))
	actifStr := strings.TrimSpace(c.Query("actif"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Preload("Photos")

	if categorie != "" {
		q = q.Where("LOWER(categorie) = ?", categorie)
	}

	if actifStr != "" {
		if actifStr == "true" {
			q = q.Where("actif = ?", true)
		} else if actifStr == "false" {
			q = q.Where("actif = ?", false)
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(nom) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var produits []models.Produit
	if err := q.
		Order("id ASC").
		Find(&produits).Error; err != nil {

		httperr.Internal(c, "failed_to_list_produits", "Erreur lors de la liste des produits.")
		return
	}

	httpresp.List(c, produits)
}

func (h *ProduitHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var produit models.Produit
	if err := h.db.Preload("Photos").First(&produit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "produit_introuvable", "Produit introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_produit", "Erreur lors de la lecture du produit.")
		return
	}

	httpresp.OK(c, produit)
}

func (h *ProduitHandler) Create(c *gin.Context) {
	var req CreateProduitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	produit := models.Produit{
		Nom:         req.Nom,
		Description: req.Description,
		Prix:        *req.Prix,
		Stock:       req.Stock,
		Categorie:   strings.ToLower(req.Categorie),
		Actif:       true,
	}

	if err := h.db.Create(&produit).Error; err != nil {
		httperr.Internal(c, "failed_to_create_produit", "Erreur lors de la création du produit.")
		return
	}

	httpresp.Created(c, produit)
}

func (h *ProduitHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var produit models.Produit
	if err := h.db.First(&produit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "produit_introuvable", "Produit introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_produit", "Erreur lors de la lecture du produit.")
		return
	}

	var req UpdateProduitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Nom != nil {
		produit.Nom = *req.Nom
	}
	if req.Description != nil {
		produit.Description = *req.Description
	}
	if req.Prix != nil {
		produit.Prix = *req.Prix
	}
	if req.Stock != nil {
		produit.Stock = *req.Stock
	}
	if req.Categorie != nil {
		produit.Categorie = strings.ToLower(*req.Categorie)
	}
	if req.Actif != nil {
		produit.Actif = *req.Actif
	}

	if err := h.db.Save(&produit).Error; err != nil {
		httperr.Internal(c, "failed_to_update_produit", "Erreur lors de la mise à jour du produit.")
		return
	}

	c.JSON(http.StatusOK, produit)
}

func (h *ProduitHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var produit models.Produit
	if err := h.db.First(&produit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "produit_introuvable", "Produit introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_produit", "Erreur lors de la lecture du produit.")
		return
	}

	if err := h.db.Delete(&produit).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "produit_reference", "Impossible de supprimer ce produit : des photos y sont rattachées.")
			return
		}
		httperr.Internal(c, "failed_to_delete_produit", "Erreur lors de la suppression du produit.")
		return
	}

	c.Status(http.StatusNoContent)
}
