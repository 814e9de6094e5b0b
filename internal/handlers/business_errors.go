package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
)

// Messages français associés aux codes métier remontés par les use cases.
var businessMessages = map[string]struct {
	status  func(c *gin.Context, code, message string)
	message string
}{
	"demande_introuvable":  {httperr.NotFound, "Demande de prestation introuvable."},
	"garage_introuvable":   {httperr.BadRequest, "Garage introuvable ou rôle invalide."},
	"demande_autre_garage": {httperr.Forbidden, "Cette demande est affectée à un autre garage."},
	"annulation_refusee":   {httperr.Forbidden, "Vous ne pouvez pas annuler cette demande."},
	"transition_invalide":  {httperr.Conflict, "Transition de statut invalide."},
}

func writeBusinessError(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	if m, known := businessMessages[code]; known {
		m.status(c, code, m.message)
	} else {
		httperr.BadRequest(c, code, "Opération refusée.")
	}
	return true
}
