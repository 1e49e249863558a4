package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"daymemory/internal/auth"
	"daymemory/internal/database"
	"daymemory/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateGift adds a gift idea for the caller
func CreateGift(c *gin.Context) {
	var req models.GiftItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.GiftIdea
	}

	gift := models.GiftItem{
		UserID:   auth.GetUserID(c),
		EventID:  req.EventID,
		Name:     req.Name,
		Price:    req.Price,
		URL:      req.URL,
		Category: req.Category,
		Status:   status,
		Memo:     req.Memo,
	}

	if err := database.GetDB().Create(&gift).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to create gift", err)
		return
	}

	c.JSON(http.StatusCreated, gift)
}

// GetGifts lists the caller's gift ideas, optionally scoped to one event
func GetGifts(c *gin.Context) {
	query := database.GetDB().Where("user_id = ?", auth.GetUserID(c))

	if raw := c.Query("eventId"); raw != "" {
		eventID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		query = query.Where("event_id = ?", uint(eventID))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var gifts []models.GiftItem
	if err := query.Order("created_at DESC").Find(&gifts).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to fetch gifts", err)
		return
	}

	c.JSON(http.StatusOK, gifts)
}

func findOwnedGift(c *gin.Context, giftID uint) (*models.GiftItem, bool) {
	var gift models.GiftItem
	err := database.GetDB().First(&gift, giftID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gift not found"})
		} else {
			handleError(c, http.StatusInternalServerError, "database error", err)
		}
		return nil, false
	}
	if gift.UserID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access to this gift"})
		return nil, false
	}
	return &gift, true
}

// UpdateGift replaces a gift idea's fields
func UpdateGift(c *gin.Context) {
	giftID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return
	}

	var req models.GiftItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gift, ok := findOwnedGift(c, uint(giftID))
	if !ok {
		return
	}

	gift.EventID = req.EventID
	gift.Name = req.Name
	gift.Price = req.Price
	gift.URL = req.URL
	gift.Category = req.Category
	if req.Status != "" {
		gift.Status = req.Status
	}
	gift.Memo = req.Memo

	if err := database.GetDB().Save(gift).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to update gift", err)
		return
	}

	c.JSON(http.StatusOK, gift)
}

// DeleteGift removes a gift idea
func DeleteGift(c *gin.Context) {
	giftID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return
	}

	gift, ok := findOwnedGift(c, uint(giftID))
	if !ok {
		return
	}

	if err := database.GetDB().Delete(gift).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to delete gift", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "gift deleted"})
}
