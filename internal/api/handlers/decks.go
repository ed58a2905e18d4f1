package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/deck-meta/backend/internal/database"
	"github.com/codyseavey/deck-meta/backend/internal/models"
	"github.com/codyseavey/deck-meta/backend/internal/services"
)

type DeckHandler struct {
	pools *services.DeckPoolService
}

func NewDeckHandler(pools *services.DeckPoolService) *DeckHandler {
	return &DeckHandler{pools: pools}
}

// ImportDecks stores a batch of tournament decklists and merges them into the
// in-memory pools. Malformed decks are reported as warnings, not failures.
func (h *DeckHandler) ImportDecks(c *gin.Context) {
	var req models.DeckImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.pools.ImportDecks(database.GetDB(), req.Decks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDecks returns the loaded decks for one archetype.
func (h *DeckHandler) ListDecks(c *gin.Context) {
	archetype := c.Query("archetype")
	if archetype == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'archetype' is required"})
		return
	}

	pool, ok := h.pools.Pool(archetype)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown archetype"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archetype": archetype, "decks": pool})
}
