package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Schedule dates

	"referendum_system/internal/domain" // Importing domain models
	"referendum_system/internal/store"  // Persistence layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateReferendumRequest represents a referendum proposal
type CreateReferendumRequest struct {
	Title       string `json:"title" binding:"required"` // Referendum title
	Description string `json:"description"`              // Referendum description
}

// UpdateReferendumRequest represents a partial update. Nil pointers mean
// "leave unchanged"; each present field is checked against the caller's
// whitelist individually. There is no patch-any-field-by-name path.
type UpdateReferendumRequest struct {
	Title       *string    `json:"title"`       // Content field
	Description *string    `json:"description"` // Content field
	Status      *string    `json:"status"`      // Lifecycle transition, moderator/admin only
	StartDate   *time.Time `json:"start_date"`  // Schedule field, moderator/admin only
	EndDate     *time.Time `json:"end_date"`    // Schedule field, moderator/admin only
}

// CreateReferendumHandler proposes a new referendum in pending status,
// owned by the authenticated caller.
func CreateReferendumHandler(referendums store.ReferendumStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateReferendumRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The creator is always the token subject, never a body field
		ref := domain.Referendum{
			Title:       req.Title,        // Referendum title
			Description: req.Description,  // Referendum description
			CreatorID:   userID.(uint),    // Token-derived creator
		}
		if err := referendums.Create(&ref); err != nil {
			logrus.WithFields(logrus.Fields{
				"creator_id": userID,      // Creator user ID
				"title":      req.Title,   // Proposed title
				"error":      err.Error(), // Error message
			}).Error("Failed to create referendum") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create referendum"})
			return
		}
		c.JSON(http.StatusCreated, ref)
	}
}

// GetReferendumsHandler looks up referendums by id or creator, optionally
// eager-loading the creator record via expand=creator.
func GetReferendumsHandler(referendums store.ReferendumStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		expand := c.Query("expand") == "creator" // Eager-load the creator relation
		// Lookup by ID takes precedence
		if idStr := c.Query("referendum_id"); idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referendum_id"})
				return
			}
			ref, err := referendums.GetByID(uint(id), expand)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Referendum not found"})
				return
			}
			c.JSON(http.StatusOK, []domain.Referendum{*ref})
			return
		}
		// Creator filter or full listing; an empty result is not an error
		var creatorID uint
		if idStr := c.Query("user_id"); idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
				return
			}
			creatorID = uint(id)
		}
		list, err := referendums.List(creatorID, expand)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referendums"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UpdateReferendumHandler applies a whitelisted partial update. Moderators
// and admins drive lifecycle transitions and schedule dates; the creator may
// edit content fields only while the referendum is still pending.
func UpdateReferendumHandler(referendums store.ReferendumStore, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		idStr := c.Query("referendum_id")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if idStr == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referendum_id"})
			return
		}
		var req UpdateReferendumRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ref, err := referendums.GetByID(uint(id), false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Referendum not found"})
			return
		}
		user, err := users.GetByID(userID.(uint)) // Resolve the caller's role
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		privileged := user.Role == domain.RoleModerator || user.Role == domain.RoleAdmin

		fields := map[string]interface{}{} // Whitelisted column updates
		if !privileged {
			// Ownership check: only the creator may touch a referendum
			if ref.CreatorID != user.ID {
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			// Creators never control status or schedule
			if req.Status != nil || req.StartDate != nil || req.EndDate != nil {
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			// Content fields are frozen once moderation has happened
			if ref.Status != domain.StatusPending {
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
		}
		if req.Title != nil {
			fields["title"] = *req.Title // Content update
		}
		if req.Description != nil {
			fields["description"] = *req.Description // Content update
		}
		if privileged {
			if req.StartDate != nil {
				fields["start_date"] = *req.StartDate // Schedule update
			}
			if req.EndDate != nil {
				fields["end_date"] = *req.EndDate // Schedule update
			}
			// Status changes run through the lifecycle state machine
			if req.Status != nil {
				if !domain.ValidStatus(*req.Status) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
					return
				}
				if !domain.CanTransition(ref.Status, *req.Status) {
					c.JSON(http.StatusConflict, gin.H{"error": "Invalid status transition"})
					return
				}
				// Approval schedules the vote: a start date is mandatory
				if *req.Status == domain.StatusApproved && req.StartDate == nil && ref.StartDate == nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is required to approve"})
					return
				}
				fields["status"] = *req.Status // Validated transition
			}
		}
		updated, err := referendums.UpdateFields(uint(id), fields)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Referendum not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"referendum_id": id,          // Target referendum
				"user_id":       user.ID,     // Caller
				"error":         err.Error(), // Error message
			}).Error("Failed to update referendum") // Log update failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update referendum"})
			return
		}
		if _, changed := fields["status"]; changed {
			logrus.WithFields(logrus.Fields{
				"referendum_id": updated.ID,     // Target referendum
				"status":        updated.Status, // New status
				"user_id":       user.ID,        // Moderating user
			}).Info("Referendum status changed") // Log lifecycle transition
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteReferendumHandler removes a referendum with its votes and tag
// links (admin only, wired in routing). Bypasses the lifecycle machine.
func DeleteReferendumHandler(referendums store.ReferendumStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Query("referendum_id")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if idStr == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referendum_id"})
			return
		}
		ref, err := referendums.Delete(uint(id))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Referendum not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"referendum_id": id,          // Target referendum
				"error":         err.Error(), // Error message
			}).Error("Failed to delete referendum") // Log deletion failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete referendum"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"referendum_id": ref.ID,    // Deleted referendum
			"title":         ref.Title, // Deleted title
		}).Info("Referendum deleted") // Log deletion
		c.JSON(http.StatusOK, ref)
	}
}
