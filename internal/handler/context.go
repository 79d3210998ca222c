package handler

import (
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/response"
	"github.com/gin-gonic/gin"
)

// identity assembles the caller's identity from the auth middleware context.
func identity(c *gin.Context) (service.Identity, error) {
	userID, err := response.GetUserID(c)
	if err != nil {
		return service.Identity{}, err
	}
	role, err := response.GetUserRole(c)
	if err != nil {
		return service.Identity{}, err
	}
	return service.Identity{UserID: userID, Role: model.Role(role)}, nil
}
