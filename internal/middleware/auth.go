package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/apierror"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth protects the admin mutation routes with the single shared
// credential pair from configuration. This is an edge gate, not a per-user
// authorization model — see the data model notes in DESIGN.md.
func BasicAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !credentialsMatch(cfg, user, pass) {
			c.Header("WWW-Authenticate", `Basic realm="Painel Administrativo"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Acesso negado. Autenticação necessária."))
			return
		}
		c.Next()
	}
}

func credentialsMatch(cfg *config.Config, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUsername)) == 1

	var passOK bool
	if cfg.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(pass)) == nil
	} else {
		if cfg.AdminPassword == "" {
			return false
		}
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.AdminPassword)) == 1
	}

	return userOK && passOK
}
