package store

import (
	"github.com/google/uuid"

	"foodie-api/apperrors"
	"foodie-api/models"
)

// ── Restaurants ─────────────────────────────────────────────────────────────

func (s *Store) ListRestaurants() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.Order("name").Find(&restaurants).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return restaurants, nil
}

func (s *Store) GetRestaurant(id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &restaurant, nil
}

func (s *Store) GetRestaurantByOwner(ownerID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, "owner_id = ?", ownerID).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &restaurant, nil
}

func (s *Store) CreateRestaurant(restaurant *models.Restaurant) error {
	restaurant.ID = uuid.NewString()
	if err := s.db.Create(restaurant).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Store) UpdateRestaurant(id string, updates map[string]any) (*models.Restaurant, error) {
	restaurant, err := s.GetRestaurant(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(restaurant).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.GetRestaurant(id)
}

// ── Menu categories ─────────────────────────────────────────────────────────

// ListMenuCategories returns a restaurant's categories sorted by sortOrder
// ascending, the order they render in.
func (s *Store) ListMenuCategories(restaurantID string) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	if err := s.db.Where("restaurant_id = ?", restaurantID).
		Order("sort_order asc").Find(&categories).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *Store) CreateMenuCategory(category *models.MenuCategory) error {
	if _, err := s.GetRestaurant(category.RestaurantID); err != nil {
		return err
	}
	category.ID = uuid.NewString()
	if err := s.db.Create(category).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ── Dishes ──────────────────────────────────────────────────────────────────

func (s *Store) ListDishes(restaurantID string) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("name").Find(&dishes).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return dishes, nil
}

func (s *Store) GetDish(id string) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.First(&dish, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "dish")
	}
	return &dish, nil
}

func (s *Store) CreateDish(dish *models.Dish) error {
	if _, err := s.GetRestaurant(dish.RestaurantID); err != nil {
		return err
	}
	dish.ID = uuid.NewString()
	if err := s.db.Create(dish).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Store) UpdateDish(id string, updates map[string]any) (*models.Dish, error) {
	dish, err := s.GetDish(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(dish).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.GetDish(id)
}

// ── Dish reviews ────────────────────────────────────────────────────────────

// CreateDishReview appends a review; reviews are never edited or deleted.
func (s *Store) CreateDishReview(review *models.DishReview) error {
	if _, err := s.GetDish(review.DishID); err != nil {
		return err
	}
	if _, err := s.GetUser(review.UserID); err != nil {
		return err
	}
	review.ID = uuid.NewString()
	if err := s.db.Create(review).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Store) ListDishReviews(dishID string) ([]models.DishReview, error) {
	var reviews []models.DishReview
	if err := s.db.Where("dish_id = ?", dishID).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return reviews, nil
}
