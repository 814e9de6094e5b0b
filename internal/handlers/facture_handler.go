package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/cache"
	invdomain "github.com/AtelierAutoPro/garage-manager/internal/domain/invoice"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

type FactureHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFactureHandler(db *gorm.DB, statsCache *cache.Cache) *FactureHandler {
	return &FactureHandler{db: db, cache: statsCache}
}

// Le nombre de factures et le chiffre d'affaires alimentent le tableau de
// bord : toute écriture fait sauter l'entrée cachée.
func (h *FactureHandler) invalidateStats(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), statsCacheKey)
	}
}

// --------- Requests ---------

type CreateFactureRequest struct {
	ClientID     uint     `json:"client_id" binding:"required"`
	ReparationID *uint    `json:"reparation_id"`
	TotalHT      *float64 `json:"total_ht"`
	TotalTTC     *float64 `json:"total_ttc"`
	Notes        string   `json:"notes"`
}

// --------- Handlers ---------

func (h *FactureHandler) List(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Preload("Client").Preload("Lignes")

	if role == models.RoleClient {
		q = q.Where("client_id = ?", userID)
	} else if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var factures []models.Facture
	if err := q.Order("date_emission DESC").Find(&factures).Error; err != nil {
		httperr.Internal(c, "failed_to_list_factures", "Erreur lors de la liste des factures.")
		return
	}

	c.JSON(http.StatusOK, factures)
}

// Get restitue la facture avec ses lignes détaillées et les totaux calculés.
// Les lignes en base font foi ; à défaut le bloc LIGNES: des notes est décodé
// (factures antérieures à la normalisation).
func (h *FactureHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var f models.Facture
	if err := h.db.
		Preload("Client").
		Preload("Lignes").
		Preload("Reparation").
		Preload("Demande").
		First(&f, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "facture_introuvable", "Facture introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_facture", "Erreur lors de la lecture de la facture.")
		return
	}

	var lignes []invdomain.DecodedLigne
	if len(f.Lignes) > 0 {
		for _, l := range f.Lignes {
			lignes = append(lignes, invdomain.DecodedLigne{
				Quantite:     l.Quantite,
				Designation:  l.Designation,
				PrixUnitaire: l.PrixUnitaire,
				Total:        float64(l.Quantite) * l.PrixUnitaire,
			})
		}
	} else {
		lignes = invdomain.DecodeLines(f.Notes)
	}

	var duree float64
	if f.Reparation != nil {
		duree = f.Reparation.DureeHeures
	} else if f.Demande != nil {
		duree = f.Demande.DureeEstime
	}

	totaux := invdomain.ComputeTotals(f.TotalHT, f.TotalTTC, duree, lignes)

	c.JSON(http.StatusOK, gin.H{
		"facture": f,
		"lignes":  lignes,
		"totaux":  totaux,
	})
}

func (h *FactureHandler) Create(c *gin.Context) {
	var req CreateFactureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	var client models.User
	if err := h.db.
		Where("id = ? AND role = ?", req.ClientID, models.RoleClient).
		First(&client).Error; err != nil {
		httperr.BadRequest(c, "client_introuvable", "Client introuvable.")
		return
	}

	f := models.Facture{
		Numero:       "FAC-" + strings.ToUpper(uuid.NewString()[:8]),
		ClientID:     req.ClientID,
		ReparationID: req.ReparationID,
		TotalHT:      req.TotalHT,
		TotalTTC:     req.TotalTTC,
		Notes:        req.Notes,
		DateEmission: timezone.Now(),
	}

	if err := h.db.Create(&f).Error; err != nil {
		httperr.Internal(c, "failed_to_create_facture", "Erreur lors de la création de la facture.")
		return
	}

	h.invalidateStats(c)

	c.JSON(http.StatusCreated, f)
}

func (h *FactureHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var f models.Facture
	if err := h.db.First(&f, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "facture_introuvable", "Facture introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_facture", "Erreur lors de la lecture de la facture.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("facture_id = ?", f.ID).Delete(&models.FactureLigne{}).Error; err != nil {
			return err
		}
		return tx.Delete(&f).Error
	})
	if err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "facture_referencee", "Impossible de supprimer cette facture.")
			return
		}
		httperr.Internal(c, "failed_to_delete_facture", "Erreur lors de la suppression de la facture.")
		return
	}

	h.invalidateStats(c)

	c.Status(http.StatusNoContent)
}
