package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

// Les clients sont des lignes users de rôle "client", il n'existe pas de
// table dédiée.
type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Nom       string `json:"nom" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password" binding:"required,min=6"`
}

type UpdateClientRequest struct {
	Nom       *string `json:"nom,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telephone *string `json:"telephone,omitempty"`
}

// ======================================================
// LIST
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("role = ?", models.RoleClient)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(nom) LIKE ? OR telephone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.User
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erreur lors de la liste des clients.")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var client models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleClient).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_introuvable", "Client introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erreur lors de la lecture du client.")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_deja_utilise", "Cette adresse e-mail est déjà utilisée.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erreur interne.")
		return
	}

	client := models.User{
		Nom:          req.Nom,
		Email:        email,
		Telephone:    req.Telephone,
		PasswordHash: string(hashed),
		Role:         models.RoleClient,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erreur lors de la création du client.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var client models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleClient).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_introuvable", "Client introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erreur lors de la lecture du client.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.Nom != nil {
		client.Nom = *req.Nom
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Telephone != nil {
		client.Telephone = *req.Telephone
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erreur lors de la mise à jour du client.")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var client models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleClient).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_introuvable", "Client introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erreur lors de la lecture du client.")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "client_reference", "Impossible de supprimer ce client : des véhicules ou factures y sont rattachés.")
			return
		}
		httperr.Internal(c, "failed_to_delete_client", "Erreur lors de la suppression du client.")
		return
	}

	c.Status(http.StatusNoContent)
}
