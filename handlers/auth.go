package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"foodie-api/apperrors"
	"foodie-api/middleware"
	"foodie-api/models"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=customer restaurant delivery_partner"`
	Phone    string          `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest is the social sign-in payload: the client has already
// authenticated against Firebase and forwards the identity.
type GoogleSignInRequest struct {
	FirebaseUID string `json:"firebaseUid" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	AvatarURL   string `json:"avatarUrl"`
}

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
	}
	if err := h.store.CreateUser(&user); err != nil {
		apperrors.Respond(c, err)
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GoogleSignIn upserts a user keyed on firebaseUid: an existing account by
// uid signs in, an existing account by email gets linked, otherwise a new
// customer account is created.
func (h *Handler) GoogleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUserByFirebaseUID(req.FirebaseUID)
	if err != nil {
		if user, err = h.store.GetUserByEmail(req.Email); err == nil {
			user, err = h.store.UpdateUser(user.ID, map[string]any{"firebase_uid": req.FirebaseUID})
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
		} else {
			user = &models.User{
				Name:        req.Name,
				Email:       req.Email,
				Role:        models.RoleCustomer,
				AvatarURL:   req.AvatarURL,
				FirebaseUID: &req.FirebaseUID,
			}
			if err := h.store.CreateUser(user); err != nil {
				apperrors.Respond(c, err)
				return
			}
		}
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.store.GetUser(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
}

// UpdateProfile merges the caller's editable profile fields
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	user, err := h.store.UpdateUser(middleware.GetUserID(c), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
