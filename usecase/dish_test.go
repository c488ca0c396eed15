package usecase_test

import (
	"context"
	"testing"

	"plazoleta-api/identity"
	"plazoleta-api/models"
	"plazoleta-api/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	callerID     = int64(5)
	restaurantID = int64(20)
)

func validDish() *models.Dish {
	return &models.Dish{
		Name:         "Hamburguesa",
		Price:        15000,
		Description:  "Hamburguesa de la casa",
		ImageURL:     "https://cdn.example.com/burger.png",
		Category:     "Comida rápida",
		RestaurantID: restaurantID,
	}
}

type dishFixture struct {
	lookup      *IdentityLookup
	restaurants *RestaurantStore
	dishes      *DishStore
	svc         *usecase.DishService
}

func newDishFixture() dishFixture {
	f := dishFixture{
		lookup:      new(IdentityLookup),
		restaurants: new(RestaurantStore),
		dishes:      new(DishStore),
	}
	f.svc = usecase.NewDishService(f.dishes, f.restaurants, f.lookup)
	return f
}

func TestDishService_CreateSuccessDefaultsActive(t *testing.T) {
	ctx := context.Background()
	f := newDishFixture()
	input := validDish()

	f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
	f.restaurants.On("ExistsByID", ctx, restaurantID).Return(true, nil).Once()
	f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(true, nil).Once()
	f.dishes.On("Save", ctx, input).Return(nil).Once()

	require.NoError(t, f.svc.Create(ctx, input, callerID))

	require.NotNil(t, input.Active)
	assert.True(t, *input.Active)
	f.dishes.AssertNumberOfCalls(t, "Save", 1)
	f.lookup.AssertExpectations(t)
	f.restaurants.AssertExpectations(t)
}

func TestDishService_CreateKeepsExplicitInactive(t *testing.T) {
	ctx := context.Background()
	f := newDishFixture()
	inactive := false
	input := validDish()
	input.Active = &inactive

	f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
	f.restaurants.On("ExistsByID", ctx, restaurantID).Return(true, nil).Once()
	f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(true, nil).Once()
	f.dishes.On("Save", ctx, input).Return(nil).Once()

	require.NoError(t, f.svc.Create(ctx, input, callerID))
	assert.False(t, *input.Active)
}

func TestDishService_CreateFieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *models.Dish)
		wantMsg string
	}{
		{"missing name", func(d *models.Dish) { d.Name = " " }, "name required"},
		{"missing description", func(d *models.Dish) { d.Description = "" }, "description required"},
		{"missing image", func(d *models.Dish) { d.ImageURL = "\t" }, "image url required"},
		{"missing category", func(d *models.Dish) { d.Category = "" }, "category required"},
		{"missing restaurant", func(d *models.Dish) { d.RestaurantID = 0 }, "restaurant id required"},
		{"name checked first", func(d *models.Dish) { d.Name = ""; d.Category = "" }, "name required"},
		{"image before category", func(d *models.Dish) { d.ImageURL = ""; d.Category = ""; d.RestaurantID = 0 }, "image url required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newDishFixture()
			input := validDish()
			tc.mutate(input)

			err := f.svc.Create(context.Background(), input, callerID)

			assertKind(t, err, usecase.KindInvalidInput)
			assert.EqualError(t, err, tc.wantMsg)
			f.lookup.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			f.dishes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestDishService_CreateAuthorization(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(ctx context.Context, f dishFixture)
		wantKind usecase.Kind
		wantMsg  string
	}{
		{
			name: "caller unknown",
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(models.Identity{}, identity.ErrNotFound).Once()
			},
			wantKind: usecase.KindIdentityNotFound,
		},
		{
			name: "identity service down",
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(models.Identity{}, identity.ErrUnavailable).Once()
			},
			wantKind: usecase.KindIdentityServiceUnavailable,
		},
		{
			name: "caller is a customer",
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).
					Return(models.Identity{ID: callerID, Role: models.RoleCustomer}, nil).Once()
			},
			wantKind: usecase.KindUnauthorized,
			wantMsg:  "not an owner",
		},
		{
			name: "restaurant missing",
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
				f.restaurants.On("ExistsByID", ctx, restaurantID).Return(false, nil).Once()
			},
			wantKind: usecase.KindRestaurantNotFound,
			wantMsg:  "restaurant not found",
		},
		{
			name: "restaurant owned by someone else",
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
				f.restaurants.On("ExistsByID", ctx, restaurantID).Return(true, nil).Once()
				f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(false, nil).Once()
			},
			wantKind: usecase.KindUnauthorized,
			wantMsg:  "restaurant not owned",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newDishFixture()
			tc.setup(ctx, f)

			err := f.svc.Create(ctx, validDish(), callerID)

			assertKind(t, err, tc.wantKind)
			if tc.wantMsg != "" {
				assert.EqualError(t, err, tc.wantMsg)
			}
			f.dishes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestDishService_CreateMissingRestaurantNeverChecksOwnership(t *testing.T) {
	ctx := context.Background()
	f := newDishFixture()

	f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
	f.restaurants.On("ExistsByID", ctx, restaurantID).Return(false, nil).Once()

	err := f.svc.Create(ctx, validDish(), callerID)

	assertKind(t, err, usecase.KindRestaurantNotFound)
	f.restaurants.AssertNotCalled(t, "OwnedBy", mock.Anything, mock.Anything, mock.Anything)
}

func TestDishService_CreatePrice(t *testing.T) {
	for _, price := range []int{0, -1, -15000} {
		ctx := context.Background()
		f := newDishFixture()
		input := validDish()
		input.Price = price

		f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
		f.restaurants.On("ExistsByID", ctx, restaurantID).Return(true, nil).Once()
		f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(true, nil).Once()

		err := f.svc.Create(ctx, input, callerID)

		assertKind(t, err, usecase.KindInvalidInput)
		assert.EqualError(t, err, "price must be positive")
		f.dishes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func storedDish() *models.Dish {
	active := true
	return &models.Dish{
		ID:           10,
		Name:         "Hamburguesa",
		Price:        15000,
		Description:  "Hamburguesa sencilla",
		ImageURL:     "https://cdn.example.com/burger.png",
		Category:     "Comida rápida",
		RestaurantID: restaurantID,
		Active:       &active,
	}
}

func TestDishService_UpdateAppliesOnlyPriceAndDescription(t *testing.T) {
	ctx := context.Background()
	f := newDishFixture()
	stored := storedDish()
	before := *stored

	f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
	f.dishes.On("GetByID", ctx, int64(10)).Return(stored, true, nil).Once()
	f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(true, nil).Once()
	f.dishes.On("Save", ctx, stored).Return(nil).Once()

	change := usecase.DishChange{Price: 18000, Description: "Hamburguesa artesanal con queso y tocineta"}
	got, err := f.svc.Update(ctx, 10, change, callerID)
	require.NoError(t, err)

	assert.Equal(t, 18000, got.Price)
	assert.Equal(t, "Hamburguesa artesanal con queso y tocineta", got.Description)
	assert.Equal(t, before.ID, got.ID)
	assert.Equal(t, before.Name, got.Name)
	assert.Equal(t, before.Category, got.Category)
	assert.Equal(t, before.ImageURL, got.ImageURL)
	assert.Equal(t, before.RestaurantID, got.RestaurantID)
	assert.Equal(t, before.Active, got.Active)
	f.dishes.AssertNumberOfCalls(t, "Save", 1)
}

func TestDishService_UpdateFailures(t *testing.T) {
	tests := []struct {
		name     string
		change   usecase.DishChange
		setup    func(ctx context.Context, f dishFixture)
		wantKind usecase.Kind
		wantMsg  string
	}{
		{
			name:   "caller not owner",
			change: usecase.DishChange{Price: 1, Description: "x"},
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).
					Return(models.Identity{ID: callerID, Role: models.RoleAdmin}, nil).Once()
			},
			wantKind: usecase.KindUnauthorized,
			wantMsg:  "not an owner",
		},
		{
			name:   "dish missing",
			change: usecase.DishChange{Price: 1, Description: "x"},
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
				f.dishes.On("GetByID", ctx, int64(10)).Return(nil, false, nil).Once()
			},
			wantKind: usecase.KindDishNotFound,
			wantMsg:  "dish not found",
		},
		{
			name:   "restaurant not owned masks invalid price",
			change: usecase.DishChange{Price: 0, Description: ""},
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
				f.dishes.On("GetByID", ctx, int64(10)).Return(storedDish(), true, nil).Once()
				f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(false, nil).Once()
			},
			wantKind: usecase.KindUnauthorized,
			wantMsg:  "restaurant not owned",
		},
		{
			name:   "price checked before description",
			change: usecase.DishChange{Price: -5, Description: " "},
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
				f.dishes.On("GetByID", ctx, int64(10)).Return(storedDish(), true, nil).Once()
				f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(true, nil).Once()
			},
			wantKind: usecase.KindInvalidInput,
			wantMsg:  "price must be positive",
		},
		{
			name:   "blank description",
			change: usecase.DishChange{Price: 100, Description: "  "},
			setup: func(ctx context.Context, f dishFixture) {
				f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
				f.dishes.On("GetByID", ctx, int64(10)).Return(storedDish(), true, nil).Once()
				f.restaurants.On("OwnedBy", ctx, restaurantID, callerID).Return(true, nil).Once()
			},
			wantKind: usecase.KindInvalidInput,
			wantMsg:  "description required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newDishFixture()
			tc.setup(ctx, f)

			got, err := f.svc.Update(ctx, 10, tc.change, callerID)

			assert.Nil(t, got)
			assertKind(t, err, tc.wantKind)
			assert.EqualError(t, err, tc.wantMsg)
			f.dishes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestDishService_UpdateStoreFailure(t *testing.T) {
	ctx := context.Background()
	f := newDishFixture()

	f.lookup.On("GetByID", ctx, callerID).Return(owner(callerID), nil).Once()
	f.dishes.On("GetByID", ctx, int64(10)).Return(nil, false, assert.AnError).Once()

	_, err := f.svc.Update(ctx, 10, usecase.DishChange{Price: 1, Description: "x"}, callerID)

	assert.ErrorIs(t, err, assert.AnError)
	_, classified := usecase.KindOf(err)
	assert.False(t, classified)
}
