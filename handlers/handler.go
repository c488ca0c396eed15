package handlers

import (
	"context"
	"net/http"
	"strconv"

	"plazoleta-api/events"
	"plazoleta-api/metrics"
	"plazoleta-api/models"
	"plazoleta-api/policy"
	"plazoleta-api/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RestaurantReader interface {
	GetByID(ctx context.Context, id int64) (*models.Restaurant, bool, error)
}

type DishReader interface {
	GetByID(ctx context.Context, id int64) (*models.Dish, bool, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, onlyActive bool) ([]models.Dish, error)
}

type Deps struct {
	Restaurants      *usecase.RestaurantService
	Dishes           *usecase.DishService
	RestaurantReader RestaurantReader
	DishReader       DishReader
	Events           events.Publisher
	Metrics          *metrics.Metrics
	Log              *logrus.Logger
}

type Handler struct {
	restaurants      *usecase.RestaurantService
	dishes           *usecase.DishService
	restaurantReader RestaurantReader
	dishReader       DishReader
	events           events.Publisher
	metrics          *metrics.Metrics
	log              *logrus.Logger
}

func New(d Deps) *Handler {
	h := &Handler{
		restaurants:      d.Restaurants,
		dishes:           d.Dishes,
		restaurantReader: d.RestaurantReader,
		dishReader:       d.DishReader,
		events:           d.Events,
		metrics:          d.Metrics,
		log:              d.Log,
	}
	if h.events == nil {
		h.events = events.NopPublisher{}
	}
	if h.log == nil {
		h.log = logrus.StandardLogger()
	}
	return h
}

// Health reports liveness only.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Plazoleta Menu API",
	})
}

// Policy lists which role may perform each guarded action.
func (h *Handler) Policy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rules":       policy.Rules(),
		"description": "Role required for each write operation",
	})
}

// publish sends e after a committed write. Failures are logged only.
func (h *Handler) publish(c *gin.Context, e events.Event) {
	if err := h.events.Publish(c.Request.Context(), e); err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"event":     e.Type,
			"entity_id": e.EntityID,
		}).Warn("menu event not published")
	}
}

func (h *Handler) record(operation policy.Action, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind, ok := usecase.KindOf(err); ok {
			outcome = kind.String()
		}
	}
	h.metrics.RecordOutcome(string(operation), outcome)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
