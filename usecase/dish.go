package usecase

import (
	"context"
	"fmt"
	"strings"

	"plazoleta-api/models"
)

// DishChange carries the only fields an owner may change on an existing dish.
type DishChange struct {
	Price       int
	Description string
}

type DishService struct {
	dishes      DishStore
	restaurants RestaurantStore
	identities  IdentityLookup
}

func NewDishService(dishes DishStore, restaurants RestaurantStore, identities IdentityLookup) *DishService {
	return &DishService{dishes: dishes, restaurants: restaurants, identities: identities}
}

// Create adds a dish to a restaurant owned by callerID. Active defaults to
// true when unset.
func (s *DishService) Create(ctx context.Context, dish *models.Dish, callerID int64) error {
	if err := validateDishFields(dish); err != nil {
		return err
	}

	if _, err := requireOwner(ctx, s.identities, callerID); err != nil {
		return err
	}

	exists, err := s.restaurants.ExistsByID(ctx, dish.RestaurantID)
	if err != nil {
		return fmt.Errorf("check restaurant: %w", err)
	}
	if !exists {
		return &Error{Kind: KindRestaurantNotFound, Message: "restaurant not found"}
	}
	if err := s.requireRestaurantOwnedBy(ctx, dish.RestaurantID, callerID); err != nil {
		return err
	}

	if dish.Price <= 0 {
		return invalidInput("price must be positive")
	}
	if dish.Active == nil {
		active := true
		dish.Active = &active
	}

	if err := s.dishes.Save(ctx, dish); err != nil {
		return fmt.Errorf("save dish: %w", err)
	}
	return nil
}

// Update applies change to the dish identified by dishID. Every field other
// than price and description keeps its stored value.
func (s *DishService) Update(ctx context.Context, dishID int64, change DishChange, callerID int64) (*models.Dish, error) {
	if _, err := requireOwner(ctx, s.identities, callerID); err != nil {
		return nil, err
	}

	dish, found, err := s.dishes.GetByID(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("load dish: %w", err)
	}
	if !found {
		return nil, &Error{Kind: KindDishNotFound, Message: "dish not found"}
	}
	if err := s.requireRestaurantOwnedBy(ctx, dish.RestaurantID, callerID); err != nil {
		return nil, err
	}

	if change.Price <= 0 {
		return nil, invalidInput("price must be positive")
	}
	if strings.TrimSpace(change.Description) == "" {
		return nil, invalidInput("description required")
	}

	dish.Price = change.Price
	dish.Description = change.Description

	if err := s.dishes.Save(ctx, dish); err != nil {
		return nil, fmt.Errorf("save dish: %w", err)
	}
	return dish, nil
}

func (s *DishService) requireRestaurantOwnedBy(ctx context.Context, restaurantID, ownerID int64) error {
	owned, err := s.restaurants.OwnedBy(ctx, restaurantID, ownerID)
	if err != nil {
		return fmt.Errorf("check restaurant owner: %w", err)
	}
	if !owned {
		return unauthorized(msgRestaurantNotOwned)
	}
	return nil
}

func validateDishFields(d *models.Dish) error {
	required := []struct {
		value string
		msg   string
	}{
		{d.Name, "name required"},
		{d.Description, "description required"},
		{d.ImageURL, "image url required"},
		{d.Category, "category required"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return invalidInput(f.msg)
		}
	}
	if d.RestaurantID == 0 {
		return invalidInput("restaurant id required")
	}
	return nil
}
