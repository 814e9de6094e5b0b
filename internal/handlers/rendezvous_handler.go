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
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

// Statuts d'un rendez-vous.
const (
	RdvEnAttente = "en_attente"
	RdvConfirme  = "confirme"
	RdvAnnule    = "annule"
	RdvTermine   = "termine"
)

var rdvStatuts = map[string]bool{
	RdvEnAttente: true,
	RdvConfirme:  true,
	RdvAnnule:    true,
	RdvTermine:   true,
}

type RendezVousHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewRendezVousHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *RendezVousHandler {
	return &RendezVousHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateRendezVousRequest struct {
	ClientID     uint   `json:"client_id"`
	VehicleID    uint   `json:"vehicle_id" binding:"required"`
	MecanicienID *uint  `json:"mecanicien_id"`
	ServiceID    *uint  `json:"service_id"`
	Date         string `json:"date" binding:"required"`
	Heure        string `json:"heure" binding:"required"`
	Notes        string `json:"notes"`
}

type UpdateRendezVousRequest struct {
	MecanicienID *uint   `json:"mecanicien_id,omitempty"`
	ServiceID    *uint   `json:"service_id,omitempty"`
	Date         *string `json:"date,omitempty"`
	Heure        *string `json:"heure,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type UpdateRdvStatutRequest struct {
	Statut string `json:"statut" binding:"required"`
}

// --------- Handlers ---------

func (h *RendezVousHandler) List(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Preload("Client").Preload("Vehicle").Preload("Service")

	if role == models.RoleClient {
		q = q.Where("client_id = ?", userID)
	} else if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	if statut := c.Query("statut"); statut != "" {
		q = q.Where("statut = ?", statut)
	}

	var rdvs []models.RendezVous
	if err := q.Order("date_heure ASC").Find(&rdvs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rendezvous", "Erreur lors de la liste des rendez-vous.")
		return
	}

	c.JSON(http.StatusOK, rdvs)
}

func (h *RendezVousHandler) Create(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateRendezVousRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	clientID := req.ClientID
	if role == models.RoleClient {
		clientID = userID
	}
	if clientID == 0 {
		httperr.BadRequest(c, "client_requis", "Le client est obligatoire.")
		return
	}

	dateHeure, err := timezone.ParseDateTime(req.Date, req.Heure)
	if err != nil {
		httperr.BadRequest(c, "date_invalide", "Date ou heure invalide.")
		return
	}

	if dateHeure.Before(timezone.Now()) {
		httperr.BadRequest(c, "date_passee", "Le rendez-vous ne peut pas être dans le passé.")
		return
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, req.VehicleID).Error; err != nil {
		httperr.BadRequest(c, "vehicule_introuvable", "Véhicule introuvable.")
		return
	}

	rdv := models.RendezVous{
		ClientID:     clientID,
		VehicleID:    req.VehicleID,
		MecanicienID: req.MecanicienID,
		ServiceID:    req.ServiceID,
		DateHeure:    dateHeure,
		Statut:       RdvEnAttente,
		Notes:        req.Notes,
	}

	if err := h.db.Create(&rdv).Error; err != nil {
		httperr.Internal(c, "failed_to_create_rendezvous", "Erreur lors de la création du rendez-vous.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "rendezvous_cree",
		Entity:   "rendezvous",
		EntityID: &rdv.ID,
	})

	c.JSON(http.StatusCreated, rdv)
}

func (h *RendezVousHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var rdv models.RendezVous
	if err := h.db.First(&rdv, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "rendezvous_introuvable", "Rendez-vous introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_rendezvous", "Erreur lors de la lecture du rendez-vous.")
		return
	}

	var req UpdateRendezVousRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.MecanicienID != nil {
		rdv.MecanicienID = req.MecanicienID
	}
	if req.ServiceID != nil {
		rdv.ServiceID = req.ServiceID
	}
	if req.Notes != nil {
		rdv.Notes = *req.Notes
	}
	// La date et l'heure se replanifient ensemble, jamais l'une sans l'autre.
	if (req.Date != nil) != (req.Heure != nil) {
		httperr.BadRequest(c, "date_incomplete", "La date et l'heure doivent être fournies ensemble.")
		return
	}
	if req.Date != nil && req.Heure != nil {
		dateHeure, err := timezone.ParseDateTime(*req.Date, *req.Heure)
		if err != nil {
			httperr.BadRequest(c, "date_invalide", "Date ou heure invalide.")
			return
		}
		rdv.DateHeure = dateHeure
	}

	if err := h.db.Save(&rdv).Error; err != nil {
		httperr.Internal(c, "failed_to_update_rendezvous", "Erreur lors de la mise à jour du rendez-vous.")
		return
	}

	c.JSON(http.StatusOK, rdv)
}

func (h *RendezVousHandler) UpdateStatut(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var rdv models.RendezVous
	if err := h.db.First(&rdv, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "rendezvous_introuvable", "Rendez-vous introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_rendezvous", "Erreur lors de la lecture du rendez-vous.")
		return
	}

	var req UpdateRdvStatutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if !rdvStatuts[req.Statut] {
		httperr.BadRequest(c, "statut_invalide", "Statut de rendez-vous inconnu.")
		return
	}

	// Un rendez-vous terminé ou annulé ne bouge plus.
	if rdv.Statut == RdvTermine || rdv.Statut == RdvAnnule {
		httperr.Conflict(c, "transition_invalide", "Ce rendez-vous ne peut plus changer de statut.")
		return
	}

	rdv.Statut = req.Statut

	if err := h.db.Save(&rdv).Error; err != nil {
		httperr.Internal(c, "failed_to_update_rendezvous", "Erreur lors de la mise à jour du statut.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "rendezvous_statut_" + req.Statut,
		Entity:   "rendezvous",
		EntityID: &rdv.ID,
	})

	c.JSON(http.StatusOK, rdv)
}

// Convertir promeut un rendez-vous confirmé en réparation. Création de la
// réparation et bascule du statut dans la même transaction.
func (h *RendezVousHandler) Convertir(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var rdv models.RendezVous
	if err := h.db.First(&rdv, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "rendezvous_introuvable", "Rendez-vous introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_rendezvous", "Erreur lors de la lecture du rendez-vous.")
		return
	}

	if rdv.Statut != RdvConfirme {
		httperr.Conflict(c, "transition_invalide", "Seul un rendez-vous confirmé peut être converti en réparation.")
		return
	}

	if rdv.ReparationID != nil {
		httperr.Conflict(c, "deja_converti", "Ce rendez-vous a déjà été converti.")
		return
	}

	var rep models.Reparation

	err := h.db.Transaction(func(tx *gorm.DB) error {
		rep = models.Reparation{
			VehicleID:           rdv.VehicleID,
			MecanicienID:        rdv.MecanicienID,
			DescriptionProbleme: rdv.Notes,
			Statut:              repair.StatusEnCours,
		}
		if err := tx.Create(&rep).Error; err != nil {
			return err
		}

		rdv.Statut = RdvTermine
		rdv.ReparationID = &rep.ID
		return tx.Save(&rdv).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_convert_rendezvous", "Erreur lors de la conversion du rendez-vous.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "rendezvous_converti",
		Entity:   "reparation",
		EntityID: &rep.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"rendezvous": rdv,
		"reparation": rep,
	})
}

func (h *RendezVousHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var rdv models.RendezVous
	if err := h.db.First(&rdv, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "rendezvous_introuvable", "Rendez-vous introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_rendezvous", "Erreur lors de la lecture du rendez-vous.")
		return
	}

	if err := h.db.Delete(&rdv).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "rendezvous_reference", "Impossible de supprimer ce rendez-vous.")
			return
		}
		httperr.Internal(c, "failed_to_delete_rendezvous", "Erreur lors de la suppression du rendez-vous.")
		return
	}

	c.Status(http.StatusNoContent)
}
