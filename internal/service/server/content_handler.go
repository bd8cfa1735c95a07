package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/filmdesk/internal/model"
)

const (
	msgAdded    = "✅ Added Successfully!"
	msgUpdated  = "✅ Updated Successfully!"
	msgSaveErr  = "Error: Check ID or Server Log"
	msgNotFound = "Not Found"
	msgDeleted  = "Deleted"
	msgError    = "Internal Server Error"
)

type ContentManager interface {
	SaveContent(ctx context.Context, req *model.ContentRequest) (created bool, err error)
	GetContents(ctx context.Context) ([]model.ContentItem, error)
	GetContent(ctx context.Context, contentHexID string) (*model.ContentItem, error)
	DeleteContent(ctx context.Context, contentHexID string) error
}

type ContentHandler struct {
	ContentManager
}

func NewContentHandler(cm ContentManager) *ContentHandler {
	return &ContentHandler{
		ContentManager: cm,
	}
}

// POSTContent creates a content, or updates it when an ID is given
func (ch ContentHandler) POSTContent(c *gin.Context) {
	var req model.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Could not parse content request")
		c.JSON(http.StatusBadRequest, gin.H{"msg": msgSaveErr})
		return
	}

	created, err := ch.ContentManager.SaveContent(c.Request.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("tmdbID", string(req.TMDBID)).Str("contentID", req.ID).Msg("Could not save content")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgSaveErr})
		return
	}
	if created {
		c.JSON(http.StatusOK, gin.H{"msg": msgAdded})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": msgUpdated})
}

// GETContents lists every content, most recent first
func (ch ContentHandler) GETContents(c *gin.Context) {
	contents, err := ch.ContentManager.GetContents(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Could not get contents")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgError})
		return
	}
	c.JSON(http.StatusOK, contents)
}

// GETContent returns a single content
func (ch ContentHandler) GETContent(c *gin.Context) {
	content, err := ch.ContentManager.GetContent(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": msgNotFound})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("contentID", c.Param("id")).Msg("Could not get content")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgError})
		return
	}
	c.JSON(http.StatusOK, content)
}

// DELETEContent deletes a content
func (ch ContentHandler) DELETEContent(c *gin.Context) {
	if err := ch.ContentManager.DeleteContent(c.Request.Context(), c.Param("id")); err != nil {
		log.Error().Err(err).Str("contentID", c.Param("id")).Msg("Could not delete content")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": msgDeleted})
}
