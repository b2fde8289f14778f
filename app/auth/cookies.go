package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Every auth cookie lives exactly as long as the access token. The
// client treats access expiry as the end of the session and refreshes
// through /refresh-token. logged_in is a plain flag the frontend reads,
// the tokens themselves stay httpOnly
func setAuthCookies(c *gin.Context, access, refresh string) {
	maxAge := viper.GetInt("jwt.access_ttl") * 60
	secure := viper.GetBool("host.ssl.enabled")

	c.SetSameSite(http.SameSiteLaxMode)

	if access != "" {
		c.SetCookie("access_token", access, maxAge, "/", "", secure, true)
	}

	if refresh != "" {
		c.SetCookie("refresh_token", refresh, maxAge, "/", "", secure, true)
	}

	c.SetCookie("logged_in", "true", maxAge, "/", "", secure, false)
}

func clearAuthCookies(c *gin.Context) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
	c.SetCookie("logged_in", "", -1, "/", "", secure, false)
}
