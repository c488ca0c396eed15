package handlers

import (
	"net/http"
	"time"

	"plazoleta-api/events"
	"plazoleta-api/middleware"
	"plazoleta-api/models"
	"plazoleta-api/policy"
	"plazoleta-api/usecase"

	"github.com/gin-gonic/gin"
)

// ── Menu ────────────────────────────────────────────────────────────────────

type CreateDishRequest struct {
	Name         string `json:"name"`
	Price        int    `json:"price"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
	RestaurantID int64  `json:"restaurant_id"`
}

type UpdateDishRequest struct {
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// CreateDish adds a dish on behalf of the authenticated owner.
func (h *Handler) CreateDish(c *gin.Context) {
	callerID, ok := middleware.CurrentIdentityID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	dish := models.Dish{
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		RestaurantID: req.RestaurantID,
	}
	err := h.dishes.Create(c.Request.Context(), &dish, callerID)
	h.record(policy.ActionCreateDish, err)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.publish(c, events.Event{
		Type:         events.DishCreated,
		EntityID:     dish.ID,
		RestaurantID: dish.RestaurantID,
		ActorID:      callerID,
		OccurredAt:   time.Now().UTC(),
	})
	c.JSON(http.StatusCreated, dish)
}

// UpdateDish changes price and description of an owned dish.
func (h *Handler) UpdateDish(c *gin.Context) {
	callerID, ok := middleware.CurrentIdentityID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	dishID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	dish, err := h.dishes.Update(c.Request.Context(), dishID, usecase.DishChange{
		Price:       req.Price,
		Description: req.Description,
	}, callerID)
	h.record(policy.ActionUpdateDish, err)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.publish(c, events.Event{
		Type:         events.DishUpdated,
		EntityID:     dish.ID,
		RestaurantID: dish.RestaurantID,
		ActorID:      callerID,
		OccurredAt:   time.Now().UTC(),
	})
	c.JSON(http.StatusOK, dish)
}

func (h *Handler) GetDish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dish, found, err := h.dishReader.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "dish not found")
		return
	}
	c.JSON(http.StatusOK, dish)
}
