package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/cache"
	"github.com/AtelierAutoPro/garage-manager/internal/domain/repair"
	domain "github.com/AtelierAutoPro/garage-manager/internal/domain/servicerequest"
	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/timezone"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c}
}

type DashboardStats struct {
	Clients           int64   `json:"clients"`
	Vehicules         int64   `json:"vehicules"`
	ReparationsOuvert int64   `json:"reparations_en_cours"`
	RendezVousAVenir  int64   `json:"rendezvous_a_venir"`
	DemandesEnAttente int64   `json:"demandes_en_attente"`
	FacturesEmises    int64   `json:"factures_emises"`
	ChiffreAffaires   float64 `json:"chiffre_affaires_ttc"`
}

// Stats agrège les compteurs du tableau de bord ; le résultat est mis en
// cache une minute, toute panne Redis retombe sur les requêtes directes.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var stats DashboardStats
	if h.cache != nil && h.cache.GetJSON(ctx, statsCacheKey, &stats) {
		c.JSON(http.StatusOK, stats)
		return
	}

	if err := h.computeStats(&stats); err != nil {
		httperr.Internal(c, "failed_to_compute_stats", "Erreur lors du calcul des statistiques.")
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL)
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) computeStats(stats *DashboardStats) error {
	if err := h.db.Model(&models.User{}).
		Where("role = ?", models.RoleClient).
		Count(&stats.Clients).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.Vehicle{}).Count(&stats.Vehicules).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.Reparation{}).
		Where("statut = ?", repair.StatusEnCours).
		Count(&stats.ReparationsOuvert).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.RendezVous{}).
		Where("statut IN ? AND date_heure > ?", []string{RdvEnAttente, RdvConfirme}, timezone.Now()).
		Count(&stats.RendezVousAVenir).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.DemandePrestation{}).
		Where("statut = ?", domain.StatusEnAttente).
		Count(&stats.DemandesEnAttente).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.Facture{}).Count(&stats.FacturesEmises).Error; err != nil {
		return err
	}

	var ca *float64
	if err := h.db.Model(&models.Facture{}).
		Select("SUM(total_ttc)").
		Scan(&ca).Error; err != nil {
		return err
	}
	if ca != nil {
		stats.ChiffreAffaires = *ca
	}

	return nil
}
