package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	"github.com/AtelierAutoPro/garage-manager/internal/cache"
	invdomain "github.com/AtelierAutoPro/garage-manager/internal/domain/invoice"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	ucdemande "github.com/AtelierAutoPro/garage-manager/internal/usecase/servicerequest"
)

// ======================================================
// HANDLER
// ======================================================

type DemandeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Cache

	acceptUC *ucdemande.AcceptDemande
	startUC  *ucdemande.StartDemande
	finishUC *ucdemande.FinishDemande
	cancelUC *ucdemande.CancelDemande
}

func NewDemandeHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	statsCache *cache.Cache,
	acceptUC *ucdemande.AcceptDemande,
	startUC *ucdemande.StartDemande,
	finishUC *ucdemande.FinishDemande,
	cancelUC *ucdemande.CancelDemande,
) *DemandeHandler {
	return &DemandeHandler{
		db:       db,
		audit:    dispatcher,
		cache:    statsCache,
		acceptUC: acceptUC,
		startUC:  startUC,
		finishUC: finishUC,
		cancelUC: cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDemandeRequest struct {
	VehicleID   uint   `json:"vehicle_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Description string `json:"description"`
}

// Les montants sont des pointeurs : un diagnostic gratuit ou une ligne offerte
// valent 0, ce que le binding "required" rejetterait sur un float nu.
type AccepterDemandeRequest struct {
	PrixEstime   *float64 `json:"prix_estime" binding:"required"`
	DureeEstimee float64  `json:"duree_estimee"`
}

type LigneFactureRequest struct {
	Designation string   `json:"designation" binding:"required"`
	Montant     *float64 `json:"montant" binding:"required"`
}

type TerminerDemandeRequest struct {
	PrixMainOeuvre *float64              `json:"prix_main_oeuvre" binding:"required"`
	Lignes         []LigneFactureRequest `json:"lignes"`
	Notes          string                `json:"notes"`
}

// ======================================================
// CRUD
// ======================================================

func (h *DemandeHandler) List(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Preload("Client").Preload("Vehicle").Preload("Service").Preload("Garage")

	switch role {
	case models.RoleClient:
		q = q.Where("client_id = ?", userID)
	case models.RoleGarage:
		// Un garage voit les demandes en attente plus celles qu'il a prises.
		q = q.Where("statut = ? OR garage_id = ?", domain.StatusEnAttente, userID)
	}

	if statut := c.Query("statut"); statut != "" {
		q = q.Where("statut = ?", statut)
	}

	var demandes []models.DemandePrestation
	if err := q.Order("created_at DESC").Find(&demandes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_demandes", "Erreur lors de la liste des demandes.")
		return
	}

	c.JSON(http.StatusOK, demandes)
}

func (h *DemandeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var d models.DemandePrestation
	if err := h.db.
		Preload("Client").
		Preload("Vehicle").
		Preload("Service").
		Preload("Garage").
		First(&d, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "demande_introuvable", "Demande de prestation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_demande", "Erreur lors de la lecture de la demande.")
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DemandeHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateDemandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND client_id = ?", req.VehicleID, userID).
		First(&vehicle).Error; err != nil {
		httperr.BadRequest(c, "vehicule_introuvable", "Véhicule introuvable pour ce client.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND actif = ?", req.ServiceID, true).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_introuvable", "Prestation introuvable ou inactive.")
		return
	}

	d := models.DemandePrestation{
		ClientID:    userID,
		VehicleID:   req.VehicleID,
		ServiceID:   req.ServiceID,
		Description: req.Description,
		Statut:      string(domain.InitialStatus()),
	}

	if err := h.db.Create(&d).Error; err != nil {
		httperr.Internal(c, "failed_to_create_demande", "Erreur lors de la création de la demande.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "demande_creee",
		Entity:   "demande_prestation",
		EntityID: &d.ID,
	})

	c.JSON(http.StatusCreated, d)
}

// ======================================================
// PIPELINE en_attente → acceptee → en_cours → terminee
// ======================================================

func (h *DemandeHandler) Accepter(c *gin.Context) {
	garageID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var req AccepterDemandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	d, err := h.acceptUC.Execute(c.Request.Context(), ucdemande.AcceptInput{
		DemandeID:    uint(id),
		GarageID:     garageID,
		PrixEstime:   *req.PrixEstime,
		DureeEstimee: req.DureeEstimee,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_accept_demande", "Erreur lors de l'acceptation de la demande.")
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DemandeHandler) Demarrer(c *gin.Context) {
	garageID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	d, err := h.startUC.Execute(c.Request.Context(), uint(id), garageID)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_start_demande", "Erreur lors du démarrage de la demande.")
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DemandeHandler) Terminer(c *gin.Context) {
	garageID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var req TerminerDemandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	lignes := make([]invdomain.Ligne, 0, len(req.Lignes))
	for _, l := range req.Lignes {
		lignes = append(lignes, invdomain.Ligne{
			Designation: l.Designation,
			Montant:     *l.Montant,
		})
	}

	f, err := h.finishUC.Execute(c.Request.Context(), ucdemande.FinishInput{
		DemandeID:      uint(id),
		GarageID:       garageID,
		PrixMainOeuvre: *req.PrixMainOeuvre,
		Lignes:         lignes,
		Notes:          req.Notes,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_finish_demande", "Erreur lors de la clôture de la demande.")
		return
	}

	// La facture émise alimente les compteurs du tableau de bord.
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), statsCacheKey)
	}

	c.JSON(http.StatusCreated, f)
}

func (h *DemandeHandler) Annuler(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	d, err := h.cancelUC.Execute(c.Request.Context(), uint(id), userID, role)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_demande", "Erreur lors de l'annulation de la demande.")
		return
	}

	c.JSON(http.StatusOK, d)
}
