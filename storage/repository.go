package storage

import (
	"context"
	"errors"

	"plazoleta-api/models"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Save(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id int64) (*models.Restaurant, bool, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &restaurant, true, nil
}

func (r *RestaurantRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *RestaurantRepository) OwnedBy(ctx context.Context, restaurantID, ownerID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, ownerID).
		Count(&count).Error
	return count > 0, err
}

type DishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{db: db}
}

// Save inserts a new dish or writes every column of an existing one.
func (r *DishRepository) Save(ctx context.Context, dish *models.Dish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

func (r *DishRepository) GetByID(ctx context.Context, id int64) (*models.Dish, bool, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).First(&dish, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &dish, true, nil
}

// ListByRestaurant returns the dishes of a restaurant, optionally only active ones.
func (r *DishRepository) ListByRestaurant(ctx context.Context, restaurantID int64, onlyActive bool) ([]models.Dish, error) {
	var dishes []models.Dish
	query := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	err := query.Order("id").Find(&dishes).Error
	return dishes, err
}

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Restaurant{}, &models.Dish{})
}
