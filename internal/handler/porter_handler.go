package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/response"
	"github.com/gin-gonic/gin"
)

// PorterHandler serves the bulk import and export endpoints.
type PorterHandler struct {
	exporter service.ExportService
	importer service.ImportService
}

func NewPorterHandler(exporter service.ExportService, importer service.ImportService) *PorterHandler {
	return &PorterHandler{exporter: exporter, importer: importer}
}

func (h *PorterHandler) ExportCategories(c *gin.Context) {
	h.export(c, h.exporter.ExportCategories)
}

func (h *PorterHandler) ExportSources(c *gin.Context) {
	h.export(c, h.exporter.ExportSources)
}

func (h *PorterHandler) ExportMangas(c *gin.Context) {
	h.export(c, h.exporter.ExportMangas)
}

func (h *PorterHandler) export(c *gin.Context, fn func(context.Context, string) (*service.Export, error)) {
	format := c.DefaultQuery("format", service.FormatJSON)

	export, err := fn(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

func (h *PorterHandler) ImportCategories(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var items []dto.CategoryImport
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of categories"})
		return
	}

	c.JSON(http.StatusOK, h.importer.ImportCategories(c.Request.Context(), caller, items))
}

func (h *PorterHandler) ImportSources(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var items []dto.SourceImport
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of sources"})
		return
	}

	c.JSON(http.StatusOK, h.importer.ImportSources(c.Request.Context(), caller, items))
}

func (h *PorterHandler) ImportMangas(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var items []dto.MangaImport
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of mangas"})
		return
	}

	c.JSON(http.StatusOK, h.importer.ImportMangas(c.Request.Context(), caller, items))
}
