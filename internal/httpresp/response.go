package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Enveloppe des listes : le front boutique pagine côté client et a besoin
// du total, et un résultat vide doit rester un tableau JSON, jamais null.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
