package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/filmdesk/internal/model"
)

const (
	// AdminKey is the session key set once the admin is logged in
	AdminKey = "admin"
	// LoginToken is handed out on every successful login
	LoginToken = "logged-in-secret-key"
)

type PasswordChecker interface {
	CheckPassword(password string) error
}

type MainHandler struct {
	PasswordChecker
	staticDir string
}

func NewMainHandler(pc PasswordChecker, staticDir string) *MainHandler {
	return &MainHandler{
		PasswordChecker: pc,
		staticDir:       staticDir,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// POSTLogin compares the password with the admin secret
func (mh MainHandler) POSTLogin(c *gin.Context) {
	// An unreadable body is checked as an empty password
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("Could not parse login request")
	}

	err := mh.PasswordChecker.CheckPassword(req.Password)
	if errors.Is(err, model.ErrWrongPassword) {
		log.Warn().Str("ip", c.ClientIP()).Msg("Failed login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "Wrong Password!"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Could not check password")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": msgError})
		return
	}

	session := sessions.Default(c)
	session.Set(AdminKey, true)
	if err := session.Save(); err != nil {
		log.Error().Err(err).Msg("Could not save session")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": LoginToken})
}

// POSTLogout clears the admin session
func (mh MainHandler) POSTLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(AdminKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "Server had problem to log you out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GETSession tells whether the current session is logged in
func (mh MainHandler) GETSession(c *gin.Context) {
	loggedIn, _ := sessions.Default(c).Get(AdminKey).(bool)
	c.JSON(http.StatusOK, gin.H{"loggedIn": loggedIn})
}

// NoRoute serves the static front-end, and a JSON 404 for everything else
func (mh MainHandler) NoRoute(c *gin.Context) {
	if mh.staticDir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
		c.FileFromFS(c.Request.URL.Path, http.Dir(mh.staticDir))
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"msg": msgNotFound})
}
