package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	"github.com/AtelierAutoPro/garage-manager/internal/domain/repair"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type ReparationHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReparationHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ReparationHandler {
	return &ReparationHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateReparationRequest struct {
	VehicleID           uint    `json:"vehicle_id" binding:"required"`
	MecanicienID        *uint   `json:"mecanicien_id"`
	DescriptionProbleme string  `json:"description_probleme" binding:"required"`
	DescriptionTravaux  string  `json:"description_travaux"`
	DureeHeures         float64 `json:"duree_heures"`
}

type UpdateReparationRequest struct {
	MecanicienID        *uint    `json:"mecanicien_id,omitempty"`
	DescriptionProbleme *string  `json:"description_probleme,omitempty"`
	DescriptionTravaux  *string  `json:"description_travaux,omitempty"`
	DureeHeures         *float64 `json:"duree_heures,omitempty"`
	Statut              *string  `json:"statut,omitempty"`
}

// --------- Handlers ---------

func (h *ReparationHandler) List(c *gin.Context) {
	q := h.db.Preload("Vehicle").Preload("Vehicle.Client").Preload("Mecanicien")

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	if statut := c.Query("statut"); statut != "" {
		q = q.Where("statut = ?", statut)
	}

	var reparations []models.Reparation
	if err := q.Order("created_at DESC").Find(&reparations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reparations", "Erreur lors de la liste des réparations.")
		return
	}

	c.JSON(http.StatusOK, reparations)
}

func (h *ReparationHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var rep models.Reparation
	if err := h.db.
		Preload("Vehicle").
		Preload("Vehicle.Client").
		Preload("Mecanicien").
		First(&rep, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reparation_introuvable", "Réparation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_reparation", "Erreur lors de la lecture de la réparation.")
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (h *ReparationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReparationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, req.VehicleID).Error; err != nil {
		httperr.BadRequest(c, "vehicule_introuvable", "Véhicule introuvable.")
		return
	}

	rep := models.Reparation{
		VehicleID:           req.VehicleID,
		MecanicienID:        req.MecanicienID,
		DescriptionProbleme: req.DescriptionProbleme,
		DescriptionTravaux:  req.DescriptionTravaux,
		DureeHeures:         req.DureeHeures,
		Statut:              repair.StatusEnCours,
	}

	if err := h.db.Create(&rep).Error; err != nil {
		httperr.Internal(c, "failed_to_create_reparation", "Erreur lors de la création de la réparation.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "reparation_creee",
		Entity:   "reparation",
		EntityID: &rep.ID,
	})

	c.JSON(http.StatusCreated, rep)
}

func (h *ReparationHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var rep models.Reparation
	if err := h.db.First(&rep, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reparation_introuvable", "Réparation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_reparation", "Erreur lors de la lecture de la réparation.")
		return
	}

	var req UpdateReparationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.MecanicienID != nil {
		rep.MecanicienID = req.MecanicienID
	}
	if req.DescriptionProbleme != nil {
		rep.DescriptionProbleme = *req.DescriptionProbleme
	}
	if req.DescriptionTravaux != nil {
		rep.DescriptionTravaux = *req.DescriptionTravaux
	}
	if req.DureeHeures != nil {
		rep.DureeHeures = *req.DureeHeures
	}
	if req.Statut != nil {
		if *req.Statut != repair.StatusEnCours && *req.Statut != repair.StatusTermine {
			httperr.BadRequest(c, "statut_invalide", "Statut de réparation inconnu.")
			return
		}
		rep.Statut = *req.Statut
	}

	if err := h.db.Save(&rep).Error; err != nil {
		httperr.Internal(c, "failed_to_update_reparation", "Erreur lors de la mise à jour de la réparation.")
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (h *ReparationHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var rep models.Reparation
	if err := h.db.First(&rep, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reparation_introuvable", "Réparation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_reparation", "Erreur lors de la lecture de la réparation.")
		return
	}

	if err := h.db.Delete(&rep).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "reparation_referencee", "Impossible de supprimer cette réparation : une facture y est rattachée.")
			return
		}
		httperr.Internal(c, "failed_to_delete_reparation", "Erreur lors de la suppression de la réparation.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// VALIDATIONS (asymétriques)
// ======================================================

// ValiderMecanicien pose le drapeau atelier et remet les confirmations
// client à zéro.
func (h *ReparationHandler) ValiderMecanicien(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var rep models.Reparation
	if err := h.db.First(&rep, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reparation_introuvable", "Réparation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_reparation", "Erreur lors de la lecture de la réparation.")
		return
	}

	repair.ValidateByMechanic(&rep)

	if err := h.db.Save(&rep).Error; err != nil {
		httperr.Internal(c, "failed_to_update_reparation", "Erreur lors de la validation.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "reparation_validee_mecanicien",
		Entity:   "reparation",
		EntityID: &rep.ID,
	})

	c.JSON(http.StatusOK, rep)
}

// ValiderClient pose les drapeaux client sans toucher à celui du mécanicien.
func (h *ReparationHandler) ValiderClient(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var rep models.Reparation
	if err := h.db.First(&rep, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reparation_introuvable", "Réparation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_reparation", "Erreur lors de la lecture de la réparation.")
		return
	}

	repair.ValidateByClient(&rep)

	if err := h.db.Save(&rep).Error; err != nil {
		httperr.Internal(c, "failed_to_update_reparation", "Erreur lors de la validation.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "reparation_validee_client",
		Entity:   "reparation",
		EntityID: &rep.ID,
	})

	c.JSON(http.StatusOK, rep)
}
