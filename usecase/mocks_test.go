package usecase_test

import (
	"context"

	"plazoleta-api/models"

	"github.com/stretchr/testify/mock"
)

type IdentityLookup struct {
	mock.Mock
}

func (m *IdentityLookup) GetByID(ctx context.Context, id int64) (models.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Identity), args.Error(1)
}

type RestaurantStore struct {
	mock.Mock
}

func (m *RestaurantStore) Save(ctx context.Context, restaurant *models.Restaurant) error {
	return m.Called(ctx, restaurant).Error(0)
}

func (m *RestaurantStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *RestaurantStore) OwnedBy(ctx context.Context, restaurantID, ownerID int64) (bool, error) {
	args := m.Called(ctx, restaurantID, ownerID)
	return args.Bool(0), args.Error(1)
}

type DishStore struct {
	mock.Mock
}

func (m *DishStore) Save(ctx context.Context, dish *models.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *DishStore) GetByID(ctx context.Context, id int64) (*models.Dish, bool, error) {
	args := m.Called(ctx, id)
	dish, _ := args.Get(0).(*models.Dish)
	return dish, args.Bool(1), args.Error(2)
}

func owner(id int64) models.Identity {
	return models.Identity{ID: id, Role: models.RoleOwner}
}
