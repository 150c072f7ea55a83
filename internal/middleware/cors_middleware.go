package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/example/mistermo/internal/config"
)

// CORSMiddleware allows the web app at CLIENT_URL to call the API.
// Without a CLIENT_URL every origin is allowed, which is what the Telegram
// WebView needs during local development.
func CORSMiddleware(appConfig *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if appConfig != nil && appConfig.ClientURL != "" {
		corsConfig.AllowOrigins = []string{appConfig.ClientURL}
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}

	return cors.New(corsConfig)
}
