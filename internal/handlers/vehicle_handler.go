package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/validators"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// --------- Requests ---------

type CreateVehicleRequest struct {
	ClientID        uint   `json:"client_id"`
	Marque          string `json:"marque" binding:"required"`
	Modele          string `json:"modele" binding:"required"`
	Annee           int    `json:"annee"`
	Immatriculation string `json:"immatriculation" binding:"required"`
	Kilometrage     int    `json:"kilometrage"`
	Carburant       string `json:"carburant"`
}

type UpdateVehicleRequest struct {
	Marque      *string `json:"marque,omitempty"`
	Modele      *string `json:"modele,omitempty"`
	Annee       *int    `json:"annee,omitempty"`
	Kilometrage *int    `json:"kilometrage,omitempty"`
	Carburant   *string `json:"carburant,omitempty"`
}

// --------- Handlers ---------

func (h *VehicleHandler) List(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Preload("Client")

	// Un client ne voit que ses véhicules ; le filtre client_id reste
	// disponible pour le back-office.
	if role == models.RoleClient {
		q = q.Where("client_id = ?", userID)
	} else if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var vehicles []models.Vehicle
	if err := q.Order("id ASC").Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Erreur lors de la liste des véhicules.")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.Preload("Client").First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicule_introuvable", "Véhicule introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Erreur lors de la lecture du véhicule.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	// Un client enregistre toujours le véhicule sous son propre compte.
	clientID := req.ClientID
	if role == models.RoleClient {
		clientID = userID
	}
	if clientID == 0 {
		httperr.BadRequest(c, "client_requis", "Le client propriétaire est obligatoire.")
		return
	}

	plate := validators.NormalizePlate(req.Immatriculation)
	if !validators.IsPlateValid(plate) {
		httperr.BadRequest(c, "immatriculation_invalide", "Le format de la plaque d'immatriculation est invalide.")
		return
	}

	var count int64
	h.db.Model(&models.Vehicle{}).Where("immatriculation = ?", plate).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "immatriculation_existante", "Un véhicule porte déjà cette immatriculation.")
		return
	}

	vehicle := models.Vehicle{
		ClientID:        clientID,
		Marque:          req.Marque,
		Modele:          req.Modele,
		Annee:           req.Annee,
		Immatriculation: plate,
		Kilometrage:     req.Kilometrage,
		Carburant:       strings.ToLower(req.Carburant),
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_create_vehicle", "Erreur lors de la création du véhicule.")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicule_introuvable", "Véhicule introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Erreur lors de la lecture du véhicule.")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Marque != nil {
		vehicle.Marque = *req.Marque
	}
	if req.Modele != nil {
		vehicle.Modele = *req.Modele
	}
	if req.Annee != nil {
		vehicle.Annee = *req.Annee
	}
	if req.Kilometrage != nil {
		vehicle.Kilometrage = *req.Kilometrage
	}
	if req.Carburant != nil {
		vehicle.Carburant = strings.ToLower(*req.Carburant)
	}

	if err := h.db.Save(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_update_vehicle", "Erreur lors de la mise à jour du véhicule.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicule_introuvable", "Véhicule introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Erreur lors de la lecture du véhicule.")
		return
	}

	if err := h.db.Delete(&vehicle).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "vehicule_reference", "Impossible de supprimer ce véhicule : des réparations ou rendez-vous y sont rattachés.")
			return
		}
		httperr.Internal(c, "failed_to_delete_vehicle", "Erreur lors de la suppression du véhicule.")
		return
	}

	c.Status(http.StatusNoContent)
}
