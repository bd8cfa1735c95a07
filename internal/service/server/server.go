package server

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// NewServer initializes the router
func NewServer(cookieSecret string, mainHandler *MainHandler, contentHandler *ContentHandler) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger, gin.Recovery())

	router.SetTrustedProxies(nil)

	router.Use(corsAllowAll())

	// Cookies
	store := cookie.NewStore([]byte(cookieSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("admin-session", store))

	// Static files, and 404 for the API
	router.NoRoute(mainHandler.NoRoute)

	api := router.Group("/api")
	api.POST("/login", mainHandler.POSTLogin).
		POST("/logout", mainHandler.POSTLogout).
		GET("/session", mainHandler.GETSession)

	api.POST("/add-content", contentHandler.POSTContent).
		GET("/contents", contentHandler.GETContents).
		GET("/content/:id", contentHandler.GETContent).
		DELETE("/content/:id", contentHandler.DELETEContent)

	return router
}
