package handlers

import (
	"net/http"
	"time"

	"plazoleta-api/events"
	"plazoleta-api/middleware"
	"plazoleta-api/models"
	"plazoleta-api/policy"

	"github.com/gin-gonic/gin"
)

// ── Restaurants ─────────────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	OwnerID int64  `json:"owner_id"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logo_url"`
	TaxID   string `json:"tax_id"`
}

// CreateRestaurant registers a restaurant for the owner named in the body.
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	restaurant := models.Restaurant{
		Name:    req.Name,
		Address: req.Address,
		OwnerID: req.OwnerID,
		Phone:   req.Phone,
		LogoURL: req.LogoURL,
		TaxID:   req.TaxID,
	}
	err := h.restaurants.Create(c.Request.Context(), &restaurant)
	h.record(policy.ActionCreateRestaurant, err)
	if err != nil {
		h.writeError(c, err)
		return
	}

	actorID, _ := middleware.CurrentIdentityID(c)
	h.publish(c, events.Event{
		Type:         events.RestaurantCreated,
		EntityID:     restaurant.ID,
		RestaurantID: restaurant.ID,
		ActorID:      actorID,
		OccurredAt:   time.Now().UTC(),
	})
	c.JSON(http.StatusCreated, restaurant)
}

func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	restaurant, found, err := h.restaurantReader.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "restaurant not found")
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// ListDishes returns a restaurant's menu. ?active=true hides inactive dishes.
func (h *Handler) ListDishes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, found, err := h.restaurantReader.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "restaurant not found")
		return
	}

	dishes, err := h.dishReader.ListByRestaurant(c.Request.Context(), id, c.Query("active") == "true")
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": id,
		"count":         len(dishes),
		"dishes":        dishes,
	})
}
