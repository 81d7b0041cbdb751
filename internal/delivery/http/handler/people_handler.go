package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkupge/linkup-backend/internal/delivery/http/middleware"
	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/usecase/discovery"
	"github.com/linkupge/linkup-backend/internal/usecase/interaction"
)

// PeopleHandler serves the swipe deck, interaction recording, favorites and
// matches.
type PeopleHandler struct {
	discoveryUseCase   *discovery.DiscoveryUseCase
	interactionUseCase *interaction.InteractionUseCase
}

func NewPeopleHandler(
	discoveryUseCase *discovery.DiscoveryUseCase,
	interactionUseCase *interaction.InteractionUseCase,
) *PeopleHandler {
	return &PeopleHandler{
		discoveryUseCase:   discoveryUseCase,
		interactionUseCase: interactionUseCase,
	}
}

// GetCandidates handles GET /people/candidates
func (h *PeopleHandler) GetCandidates(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	candidates, err := h.discoveryUseCase.SelectCandidates(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "complete your profile first"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": candidates})
}

// RecordInteractionRequest carries a swipe decision.
type RecordInteractionRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
	Type         string `json:"interaction_type" binding:"required"`
}

// RecordInteraction handles POST /people/interactions
func (h *PeopleHandler) RecordInteraction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req RecordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.interactionUseCase.Record(
		c.Request.Context(), userID, req.TargetUserID, domain.InteractionType(req.Type),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfInteraction):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot interact with yourself"})
		case errors.Is(err, domain.ErrInvalidInteractionType), errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interaction"})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "target user not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save interaction"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFavorites handles GET /people/favorites
func (h *PeopleHandler) GetFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	favorites, err := h.interactionUseCase.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "complete your profile first"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": favorites})
}

// GetMatches handles GET /people/matches
func (h *PeopleHandler) GetMatches(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	matches, err := h.interactionUseCase.ListMatches(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "complete your profile first"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": matches})
}
