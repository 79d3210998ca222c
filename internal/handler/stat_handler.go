package handler

import (
	"context"
	"net/http"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatHandler struct {
	stats service.StatService
}

func NewStatHandler(stats service.StatService) *StatHandler {
	return &StatHandler{stats: stats}
}

func (h *StatHandler) IncrementViews(c *gin.Context) {
	h.increment(c, h.stats.IncrementViews)
}

func (h *StatHandler) IncrementLikes(c *gin.Context) {
	h.increment(c, h.stats.IncrementLikes)
}

func (h *StatHandler) IncrementFavorites(c *gin.Context) {
	h.increment(c, h.stats.IncrementFavorites)
}

func (h *StatHandler) Summary(c *gin.Context) {
	summary, err := h.stats.Summarize(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StatHandler) increment(c *gin.Context, fn func(context.Context, uuid.UUID) (*model.Stat, error)) {
	mangaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	stat, err := fn(c.Request.Context(), mangaID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}
