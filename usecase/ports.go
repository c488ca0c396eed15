package usecase

import (
	"context"

	"plazoleta-api/models"
)

// IdentityLookup resolves an identity id against the identity service.
type IdentityLookup interface {
	GetByID(ctx context.Context, id int64) (models.Identity, error)
}

type RestaurantStore interface {
	Save(ctx context.Context, restaurant *models.Restaurant) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	OwnedBy(ctx context.Context, restaurantID, ownerID int64) (bool, error)
}

// DishStore reports a missing dish with found=false and a nil error.
type DishStore interface {
	Save(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id int64) (dish *models.Dish, found bool, err error)
}

// requireOwner confirms that id exists upstream and holds the owner role.
func requireOwner(ctx context.Context, lookup IdentityLookup, id int64) (models.Identity, error) {
	ident, err := lookup.GetByID(ctx, id)
	if err != nil {
		return models.Identity{}, identityError(err)
	}
	if !ident.IsOwner() {
		return models.Identity{}, unauthorized(msgNotOwner)
	}
	return ident, nil
}
