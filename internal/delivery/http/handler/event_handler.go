package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkupge/linkup-backend/internal/delivery/http/middleware"
	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/usecase/event"
)

type EventHandler struct {
	eventUseCase *event.EventUseCase
}

func NewEventHandler(eventUseCase *event.EventUseCase) *EventHandler {
	return &EventHandler{eventUseCase: eventUseCase}
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.eventUseCase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event date, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	events, err := h.eventUseCase.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	resp, err := h.eventUseCase.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get event"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req event.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.eventUseCase.Update(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		case errors.Is(err, domain.ErrNotEventOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "only the event creator can modify it"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event date, expected YYYY-MM-DD"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	err := h.eventUseCase.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		case errors.Is(err, domain.ErrNotEventOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "only the event creator can modify it"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// Join handles POST /events/:id/join
func (h *EventHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	err := h.eventUseCase.Join(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		case errors.Is(err, domain.ErrEventFull):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "event is full"})
		case errors.Is(err, domain.ErrAlreadyJoined):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "already joined this event"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to join event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined"})
}

// Leave handles POST /events/:id/leave
func (h *EventHandler) Leave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	err := h.eventUseCase.Leave(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		case errors.Is(err, domain.ErrNotJoined):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "not a participant of this event"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to leave event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left"})
}

// Participants handles GET /events/:id/participants
func (h *EventHandler) Participants(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	participants, err := h.eventUseCase.Participants(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": participants})
}
