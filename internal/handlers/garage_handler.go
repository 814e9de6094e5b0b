package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type GarageHandler struct {
	db *gorm.DB
}

func NewGarageHandler(db *gorm.DB) *GarageHandler {
	return &GarageHandler{db: db}
}

type UpdateGarageProfileRequest struct {
	RaisonSociale *string  `json:"raison_sociale,omitempty"`
	Adresse       *string  `json:"adresse,omitempty"`
	Siret         *string  `json:"siret,omitempty"`
	TauxHoraire   *float64 `json:"taux_horaire,omitempty"`
}

func (h *GarageHandler) GetMeGarage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.GarageProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "garage_introuvable", "Profil garage introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_garage", "Erreur lors de la lecture du profil garage.")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *GarageHandler) UpdateMeGarage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.GarageProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "garage_introuvable", "Profil garage introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_garage", "Erreur lors de la lecture du profil garage.")
		return
	}

	var req UpdateGarageProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.RaisonSociale != nil {
		profile.RaisonSociale = *req.RaisonSociale
	}
	if req.Adresse != nil {
		profile.Adresse = *req.Adresse
	}
	if req.Siret != nil {
		profile.Siret = *req.Siret
	}
	if req.TauxHoraire != nil {
		if *req.TauxHoraire < 0 {
			httperr.BadRequest(c, "taux_invalide", "Le taux horaire doit être positif.")
			return
		}
		profile.TauxHoraire = *req.TauxHoraire
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_garage", "Erreur lors de l'enregistrement du profil garage.")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListGarages expose les garages pouvant recevoir une demande de prestation.
func (h *GarageHandler) ListGarages(c *gin.Context) {
	var garages []models.GarageProfile
	if err := h.db.Preload("User").Find(&garages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_garages", "Erreur lors de la liste des garages.")
		return
	}

	c.JSON(http.StatusOK, garages)
}
