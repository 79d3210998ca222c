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

// maxCoverSize caps cover uploads at 5 MB.
const maxCoverSize = 5 << 20

type MangaHandler struct {
	mangas service.MangaService
}

func NewMangaHandler(mangas service.MangaService) *MangaHandler {
	return &MangaHandler{mangas: mangas}
}

func (h *MangaHandler) List(c *gin.Context) {
	var filter dto.MangaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	paged, err := h.mangas.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, paged)
}

func (h *MangaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	manga, err := h.mangas.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, manga)
}

func (h *MangaHandler) Create(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateMangaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	manga, err := h.mangas.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, manga)
}

func (h *MangaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	var req dto.UpdateMangaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	manga, err := h.mangas.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, manga)
}

func (h *MangaHandler) Delete(c *gin.Context) {
	caller, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	if err := h.mangas.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadCover accepts a multipart "cover" file and stores it as the manga's
// cover image.
func (h *MangaHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cover file is required"})
		return
	}
	if fileHeader.Size > maxCoverSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cover file exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	manga, err := h.mangas.SetCover(c.Request.Context(), id, file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, manga)
}
