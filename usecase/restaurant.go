package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"plazoleta-api/models"
)

var (
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]+$`)
)

const maxPhoneLength = 13

type RestaurantService struct {
	restaurants RestaurantStore
	identities  IdentityLookup
}

func NewRestaurantService(restaurants RestaurantStore, identities IdentityLookup) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, identities: identities}
}

// Create validates the restaurant fields, confirms its owner holds the owner
// role upstream and persists it unchanged.
func (s *RestaurantService) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if err := validateRestaurant(restaurant); err != nil {
		return err
	}

	if _, err := requireOwner(ctx, s.identities, restaurant.OwnerID); err != nil {
		return err
	}

	if err := s.restaurants.Save(ctx, restaurant); err != nil {
		return fmt.Errorf("save restaurant: %w", err)
	}
	return nil
}

func validateRestaurant(r *models.Restaurant) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return invalidInput("name required")
	}
	if digitsOnly.MatchString(name) {
		return invalidInput("name must not be only digits")
	}

	if !digitsOnly.MatchString(r.TaxID) {
		return invalidInput("tax id must be numeric")
	}

	// format before length
	if !phonePattern.MatchString(r.Phone) {
		return invalidInput("phone must be numeric, optional leading +")
	}
	if len(r.Phone) > maxPhoneLength {
		return invalidInput("phone too long")
	}
	return nil
}
