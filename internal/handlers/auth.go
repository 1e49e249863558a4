package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"daymemory/internal/auth"
	"daymemory/internal/database"
	"daymemory/internal/models"
	"daymemory/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register creates a new user account
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "database error", err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user := models.User{
		Email:       req.Email,
		HashedPass:  hashed,
		DisplayName: req.DisplayName,
	}
	if err := db.Create(&user).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to create account", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
	})
}

// Login handles user authentication and issues a JWT token
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		handleError(c, http.StatusInternalServerError, "database error", err)
		return
	}

	if !auth.CheckPassword(user.HashedPass, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	// Update last login time; a failure here should not fail the login
	if err := db.Model(&user).Update("last_login", time.Now()).Error; err != nil {
		log.Printf("Warning: failed to update last login for user %d: %v", user.ID, err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}

	log.Printf("User %d logged in from %s", user.ID, utils.GetRealClientIP(c))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
	})
}

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		handleError(c, http.StatusNotFound, "user not found", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
