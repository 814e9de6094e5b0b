package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Nom         string  `json:"nom" binding:"required"`
	Description string  `json:"description"`
	PrixIndique float64 `json:"prix_indique"`
	DureeMin    int     `json:"duree_min"`
}

type UpdateServiceRequest struct {
	Nom         *string  `json:"nom,omitempty"`
	Description *string  `json:"description,omitempty"`
	PrixIndique *float64 `json:"prix_indique,omitempty"`
	DureeMin    *int     `json:"duree_min,omitempty"`
	Actif       *bool    `json:"actif,omitempty"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Session(&gorm.Session{})

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(nom) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if actif := strings.TrimSpace(c.Query("actif")); actif == "true" {
		q = q.Where("actif = ?", true)
	} else if actif == "false" {
		q = q.Where("actif = ?", false)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erreur lors de la liste des prestations.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	service := models.Service{
		Nom:         req.Nom,
		Description: req.Description,
		PrixIndique: req.PrixIndique,
		DureeMin:    req.DureeMin,
		Actif:       true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erreur lors de la création de la prestation.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_introuvable", "Prestation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erreur lors de la lecture de la prestation.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Nom != nil {
		service.Nom = *req.Nom
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.PrixIndique != nil {
		service.PrixIndique = *req.PrixIndique
	}
	if req.DureeMin != nil {
		service.DureeMin = *req.DureeMin
	}
	if req.Actif != nil {
		service.Actif = *req.Actif
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erreur lors de la mise à jour de la prestation.")
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_introuvable", "Prestation introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erreur lors de la lecture de la prestation.")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "service_reference", "Impossible de supprimer cette prestation : des demandes y sont rattachées.")
			return
		}
		httperr.Internal(c, "failed_to_delete_service", "Erreur lors de la suppression de la prestation.")
		return
	}

	c.Status(http.StatusNoContent)
}
