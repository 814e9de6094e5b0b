package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/audit"
	"github.com/AtelierAutoPro/garage-manager/internal/cache"
	"github.com/AtelierAutoPro/garage-manager/internal/config"
	"github.com/AtelierAutoPro/garage-manager/internal/handlers"
	infraRepo "github.com/AtelierAutoPro/garage-manager/internal/infra/repository"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/storage"
	ucDemande "github.com/AtelierAutoPro/garage-manager/internal/usecase/servicerequest"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	demandeRepo := infraRepo.NewDemandeGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	statsCache := cache.New(cfg)
	photoStore := storage.NewPhotoStore(cfg)

	// ======================================================
	// USE CASES : DEMANDES DE PRESTATION
	// ======================================================
	acceptDemandeUC := ucDemande.NewAcceptDemande(demandeRepo, auditDispatcher)
	startDemandeUC := ucDemande.NewStartDemande(demandeRepo, auditDispatcher)
	finishDemandeUC := ucDemande.NewFinishDemande(demandeRepo, auditDispatcher)
	cancelDemandeUC := ucDemande.NewCancelDemande(demandeRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	garageHandler := handlers.NewGarageHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	reparationHandler := handlers.NewReparationHandler(db, auditDispatcher)
	rendezVousHandler := handlers.NewRendezVousHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db)

	demandeHandler := handlers.NewDemandeHandler(
		db,
		auditDispatcher,
		statsCache,
		acceptDemandeUC,
		startDemandeUC,
		finishDemandeUC,
		cancelDemandeUC,
	)

	factureHandler := handlers.NewFactureHandler(db, statsCache)
	produitHandler := handlers.NewProduitHandler(db)
	photoHandler := handlers.NewPhotoHandler(db, photoStore)
	dashboardHandler := handlers.NewDashboardHandler(db, statsCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BOUTIQUE (lecture publique)
		// ------------------------------
		api.GET("/boutique/produits", produitHandler.List)
		api.GET("/boutique/produits/:id", produitHandler.Get)
		api.GET("/boutique/produits/:id/photos", photoHandler.List)

		api.GET("/services", serviceHandler.List)
		api.GET("/garages", garageHandler.ListGarages)

		// ------------------------------
		// API PRIVÉE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/garage", middleware.RequireRole(models.RoleGarage), garageHandler.GetMeGarage)
			secured.PUT("/me/garage", middleware.RequireRole(models.RoleGarage), garageHandler.UpdateMeGarage)

			// ------------------------------
			// CLIENTS (back-office)
			// ------------------------------
			staff := middleware.RequireRole(models.RoleAdmin, models.RoleGarage, models.RoleMecano)

			secured.GET("/clients", staff, clientHandler.List)
			secured.POST("/clients", staff, clientHandler.Create)
			secured.GET("/clients/:id", staff, clientHandler.Get)
			secured.PUT("/clients/:id", staff, clientHandler.Update)
			secured.DELETE("/clients/:id", middleware.RequireRole(models.RoleAdmin), clientHandler.Delete)

			// ------------------------------
			// VÉHICULES
			// ------------------------------
			secured.GET("/vehicules", vehicleHandler.List)
			secured.POST("/vehicules", vehicleHandler.Create)
			secured.GET("/vehicules/:id", vehicleHandler.Get)
			secured.PUT("/vehicules/:id", vehicleHandler.Update)
			secured.DELETE("/vehicules/:id", vehicleHandler.Delete)

			// ------------------------------
			// RÉPARATIONS
			// ------------------------------
			secured.GET("/reparations", reparationHandler.List)
			secured.POST("/reparations", staff, reparationHandler.Create)
			secured.GET("/reparations/:id", reparationHandler.Get)
			secured.PUT("/reparations/:id", staff, reparationHandler.Update)
			secured.DELETE("/reparations/:id", middleware.RequireRole(models.RoleAdmin), reparationHandler.Delete)
			secured.PATCH("/reparations/:id/valider-mecanicien",
				middleware.RequireRole(models.RoleMecano, models.RoleGarage, models.RoleAdmin),
				reparationHandler.ValiderMecanicien)
			secured.PATCH("/reparations/:id/valider-client",
				middleware.RequireRole(models.RoleClient),
				reparationHandler.ValiderClient)

			// ------------------------------
			// CATALOGUE DE PRESTATIONS
			// ------------------------------
			secured.POST("/services", staff, serviceHandler.Create)
			secured.PUT("/services/:id", staff, serviceHandler.Update)
			secured.DELETE("/services/:id", middleware.RequireRole(models.RoleAdmin), serviceHandler.Delete)

			// ------------------------------
			// RENDEZ-VOUS
			// ------------------------------
			secured.GET("/rendezvous", rendezVousHandler.List)
			secured.POST("/rendezvous", rendezVousHandler.Create)
			secured.PUT("/rendezvous/:id", rendezVousHandler.Update)
			secured.PATCH("/rendezvous/:id/statut", staff, rendezVousHandler.UpdateStatut)
			secured.POST("/rendezvous/:id/convertir", staff, rendezVousHandler.Convertir)
			secured.DELETE("/rendezvous/:id", rendezVousHandler.Delete)

			// ------------------------------
			// DEMANDES DE PRESTATION
			// ------------------------------
			garageOnly := middleware.RequireRole(models.RoleGarage, models.RoleAdmin)

			secured.GET("/demandes", demandeHandler.List)
			secured.POST("/demandes", middleware.RequireRole(models.RoleClient), demandeHandler.Create)
			secured.GET("/demandes/:id", demandeHandler.Get)
			secured.PATCH("/demandes/:id/accepter", garageOnly, demandeHandler.Accepter)
			secured.PATCH("/demandes/:id/demarrer", garageOnly, demandeHandler.Demarrer)
			secured.PATCH("/demandes/:id/terminer", garageOnly, demandeHandler.Terminer)
			secured.PATCH("/demandes/:id/annuler", demandeHandler.Annuler)

			// ------------------------------
			// FACTURES
			// ------------------------------
			secured.GET("/factures", factureHandler.List)
			secured.POST("/factures", staff, factureHandler.Create)
			secured.GET("/factures/:id", factureHandler.Get)
			secured.DELETE("/factures/:id", middleware.RequireRole(models.RoleAdmin), factureHandler.Delete)

			// ------------------------------
			// BOUTIQUE (écriture)
			// ------------------------------
			secured.POST("/boutique/produits", garageOnly, produitHandler.Create)
			secured.PUT("/boutique/produits/:id", garageOnly, produitHandler.Update)
			secured.DELETE("/boutique/produits/:id", garageOnly, produitHandler.Delete)
			secured.POST("/boutique/produits/:id/photos", garageOnly, photoHandler.Upload)
			secured.DELETE("/boutique/produits/:id/photos/:photoId", garageOnly, photoHandler.Delete)

			// ------------------------------
			// DASHBOARD / AUDIT
			// ------------------------------
			secured.GET("/dashboard/stats", staff, dashboardHandler.Stats)
			secured.GET("/audit-logs", middleware.RequireRole(models.RoleAdmin), auditLogsHandler.List)
		}
	}
}
