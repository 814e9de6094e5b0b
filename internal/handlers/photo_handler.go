package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
	"github.com/AtelierAutoPro/garage-manager/internal/storage"
)

// 8 Mo par upload, largement suffisant pour une photo produit.
const maxPhotoBytes = 8 << 20

type PhotoHandler struct {
	db    *gorm.DB
	store *storage.PhotoStore
}

func NewPhotoHandler(db *gorm.DB, store *storage.PhotoStore) *PhotoHandler {
	return &PhotoHandler{db: db, store: store}
}

func (h *PhotoHandler) List(c *gin.Context) {
	produitID := c.Param("id")

	var photos []models.ProduitPhoto
	if err := h.db.
		Where("produit_id = ?", produitID).
		Order("id ASC").
		Find(&photos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_photos", "Erreur lors de la liste des photos.")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// Upload reçoit un champ multipart "photo", recode l'image en WebP et la
// pousse vers le stockage objet avant d'enregistrer la ligne.
func (h *PhotoHandler) Upload(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var produit models.Produit
	if err := h.db.First(&produit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "produit_introuvable", "Produit introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_produit", "Erreur lors de la lecture du produit.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_requise", "Le fichier photo est obligatoire.")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_trop_lourde", "La photo dépasse la taille maximale autorisée.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erreur lors de la lecture du fichier.")
		return
	}
	defer file.Close()

	stored, err := h.store.Put(c.Request.Context(), produit.ID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Erreur lors de l'enregistrement de la photo.")
		return
	}

	photo := models.ProduitPhoto{
		ProduitID:   produit.ID,
		ObjectKey:   stored.Key,
		URL:         stored.URL,
		ContentType: stored.ContentType,
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "Erreur lors de l'enregistrement de la photo.")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	produitID := c.Param("id")
	photoID := c.Param("photoId")

	var photo models.ProduitPhoto
	if err := h.db.
		Where("id = ? AND produit_id = ?", photoID, produitID).
		First(&photo).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "photo_introuvable", "Photo introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_photo", "Erreur lors de la lecture de la photo.")
		return
	}

	// L'objet S3 d'abord ; si le stockage échoue la ligne reste et la photo
	// demeure visible.
	if err := h.store.Delete(c.Request.Context(), photo.ObjectKey); err != nil {
		httperr.Internal(c, "failed_to_delete_photo", "Erreur lors de la suppression de la photo.")
		return
	}

	if err := h.db.Delete(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_photo", "Erreur lors de la suppression de la photo.")
		return
	}

	c.Status(http.StatusNoContent)
}
