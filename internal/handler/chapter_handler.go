package handler

import (
	"net/http"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/response"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChapterHandler struct {
	chapters service.ChapterService
}

func NewChapterHandler(chapters service.ChapterService) *ChapterHandler {
	return &ChapterHandler{chapters: chapters}
}

func (h *ChapterHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	paged, err := h.chapters.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, paged)
}

func (h *ChapterHandler) ListByManga(c *gin.Context) {
	mangaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	chapters, err := h.chapters.ListByManga(c.Request.Context(), mangaID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, chapters)
}

func (h *ChapterHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	chapter, err := h.chapters.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *ChapterHandler) Create(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mangaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	chapter, err := h.chapters.Create(c.Request.Context(), caller, mangaID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (h *ChapterHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	chapter, err := h.chapters.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *ChapterHandler) Delete(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	if err := h.chapters.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
