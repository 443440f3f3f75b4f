package routes

import (
	"github.com/gin-gonic/gin"

	"foodie-api/handlers"
	"foodie-api/middleware"
	"foodie-api/models"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.POST("/auth/google", h.GoogleSignIn)

		// Catalog (no auth needed)
		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id", h.GetRestaurant)
		public.GET("/restaurants/:id/categories", h.ListMenuCategories)
		public.GET("/restaurants/:id/dishes", h.ListDishes)
		public.GET("/dishes/:id", h.GetDish)
		public.GET("/dishes/:id/reviews", h.ListDishReviews)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/addresses", h.ListAddresses)
		customer.POST("/addresses", h.CreateAddress)
		customer.DELETE("/addresses/:id", h.DeleteAddress)

		customer.POST("/coupons/validate", h.ValidateCoupon)

		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)

		customer.POST("/dishes/:id/reviews", h.CreateDishReview)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurant))
	{
		restaurant.POST("/", h.CreateRestaurant)
		restaurant.GET("/", h.GetMyRestaurant)
		restaurant.PUT("/", h.UpdateRestaurant)

		restaurant.POST("/categories", h.CreateMenuCategory)
		restaurant.POST("/dishes", h.CreateDish)
		restaurant.PUT("/dishes/:dishId", h.UpdateDish)

		restaurant.GET("/orders", h.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Delivery partner routes ────────────────────────────────────
	partner := r.Group("/api/partner")
	partner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDeliveryPartner))
	{
		partner.POST("/register", h.RegisterPartner)
		partner.GET("/me", h.GetMyPartnerProfile)
		partner.PATCH("/status", h.UpdatePartnerStatus)

		partner.GET("/orders/available", h.GetAvailableOrders)
		partner.POST("/orders/:id/accept", h.AcceptOrder)
		partner.PUT("/orders/:id/deliver", h.DeliverOrder)
		partner.GET("/orders/mine", h.GetMyDeliveries)
	}
}
