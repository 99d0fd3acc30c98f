package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hivewatch/internal/models"
)

// Trainings

func (h *Handler) CreateTraining(c *gin.Context) {
	var in models.TrainingCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Errorf("Invalid request body for training: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	training, err := h.store.CreateTraining(c.Request.Context(), in)
	if err != nil {
		h.logger.Errorf("Failed to create training: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create training"})
		return
	}
	h.logger.Infof("Created training %s", training.ID)
	c.JSON(http.StatusCreated, training)
}

func (h *Handler) GetTraining(c *gin.Context) {
	id := c.Param("id")
	training, err := h.store.GetTraining(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorf("Failed to get training %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
		return
	}
	c.JSON(http.StatusOK, training)
}

func (h *Handler) GetAllTrainings(c *gin.Context) {
	trainings, err := h.store.GetAllTrainings(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get trainings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trainings"})
		return
	}
	c.JSON(http.StatusOK, trainings)
}

func (h *Handler) UpdateTraining(c *gin.Context) {
	id := c.Param("id")
	var in models.TrainingCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Errorf("Invalid request body for training update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.store.UpdateTraining(c.Request.Context(), id, in); err != nil {
		h.logger.Errorf("Failed to update training %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training updated"})
}

func (h *Handler) DeleteTraining(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteTraining(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to delete training %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training deleted"})
}

// Tips

func (h *Handler) CreateTip(c *gin.Context) {
	var in models.TipCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Errorf("Invalid request body for tip: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tip, err := h.store.CreateTip(c.Request.Context(), in)
	if err != nil {
		h.logger.Errorf("Failed to create tip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tip"})
		return
	}
	h.logger.Infof("Created tip %s", tip.ID)
	c.JSON(http.StatusCreated, tip)
}

func (h *Handler) GetAllTips(c *gin.Context) {
	tips, err := h.store.GetAllTips(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get tips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tips"})
		return
	}
	c.JSON(http.StatusOK, tips)
}

func (h *Handler) DeleteTip(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteTip(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to delete tip %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Tip not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tip deleted"})
}

// Marketplace listings

func (h *Handler) CreateListing(c *gin.Context) {
	var in models.ListingCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Errorf("Invalid request body for listing: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	listing, err := h.store.CreateListing(c.Request.Context(), in)
	if err != nil {
		h.logger.Errorf("Failed to create listing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}
	h.logger.Infof("Created listing %s for user %s", listing.ID, listing.UserID)
	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) GetListingsByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	listings, err := h.store.GetListingsByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to get listings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetActiveListings(c *gin.Context) {
	listings, err := h.store.GetActiveListings(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get active listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) UpdateListingStatus(c *gin.Context) {
	id := c.Param("id")
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if in.Status != models.ListingActive && in.Status != models.ListingSold && in.Status != models.ListingInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := h.store.UpdateListingStatus(c.Request.Context(), id, in.Status); err != nil {
		h.logger.Errorf("Failed to update listing %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing updated"})
}

func (h *Handler) DeleteListing(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteListing(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to delete listing %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}
