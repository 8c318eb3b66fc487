package handler

import (
	"net/http"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/config"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"

	"github.com/gin-gonic/gin"
)

// SiteConfig exposes the public settings the frontend renders with
// (WhatsApp contact number and the base URL used for static generation).
func SiteConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.SiteConfigResponse{
			WhatsAppNumber: cfg.WhatsAppNumber,
			PublicBaseURL:  cfg.PublicBaseURL,
		})
	}
}
