package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hivewatch/internal/models"
)

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	return v, nil
}

func (h *Handler) CreateHive(c *gin.Context) {
	var in models.HiveCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Errorf("Invalid request body for hive: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	hive, err := h.store.CreateHive(c.Request.Context(), in)
	if err != nil {
		h.logger.Errorf("Failed to create hive: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hive"})
		return
	}

	h.logger.Infof("Created hive %s for user %s (pending approval)", hive.ID, hive.UserID)
	c.JSON(http.StatusCreated, hive)
}

func (h *Handler) GetHive(c *gin.Context) {
	id := c.Param("id")
	hive, err := h.store.GetHive(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorf("Failed to get hive %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Hive not found"})
		return
	}
	c.JSON(http.StatusOK, hive)
}

func (h *Handler) GetHivesByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	hives, err := h.store.GetHivesByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to get hives for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get hives"})
		return
	}
	c.JSON(http.StatusOK, hives)
}

func (h *Handler) GetPendingHives(c *gin.Context) {
	hives, err := h.store.GetPendingHives(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get pending hives: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pending hives"})
		return
	}
	c.JSON(http.StatusOK, hives)
}

func (h *Handler) GetAllHives(c *gin.Context) {
	hives, err := h.store.GetAllHives(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get all hives: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get hives"})
		return
	}
	c.JSON(http.StatusOK, hives)
}

func (h *Handler) UpdateHive(c *gin.Context) {
	id := c.Param("id")
	var in models.HiveUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Errorf("Invalid request body for hive update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if in.Status != "" && in.Status != models.HiveStatusPending &&
		in.Status != models.HiveStatusConfirmed && in.Status != models.HiveStatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := h.store.UpdateHive(c.Request.Context(), id, in); err != nil {
		h.logger.Errorf("Failed to update hive %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Hive not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hive updated"})
}

// ApproveHive confirms a pending registration.
func (h *Handler) ApproveHive(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.UpdateHiveStatus(c.Request.Context(), id, models.HiveStatusConfirmed); err != nil {
		h.logger.Errorf("Failed to approve hive %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Hive not found"})
		return
	}
	h.logger.Infof("Approved hive %s", id)
	c.JSON(http.StatusOK, gin.H{"message": "Hive approved"})
}

func (h *Handler) DeleteHive(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteHive(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to delete hive %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Hive not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hive deleted"})
}
