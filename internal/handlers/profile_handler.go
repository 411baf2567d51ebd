package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/internal/validator"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(v *validator.Validator, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    NewBaseHandler(v),
		profileService: profileService,
	}
}

// RegisterPublicRoutes mounts the unauthenticated directory.
func (h *ProfileHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("", h.Search)
	r.GET("/:userId", h.GetProfile)
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.GetMyProfile)
	r.PUT("/me", h.UpdateMyProfile)
}

func (h *ProfileHandler) Search(c *gin.Context) {
	var criteria repositories.ProfileCriteria
	if !h.BindAndValidateQuery(c, &criteria) {
		return
	}

	response, err := h.profileService.Search(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
