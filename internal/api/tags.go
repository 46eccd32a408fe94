package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"referendum_system/internal/domain" // Importing domain models
	"referendum_system/internal/store"  // Persistence layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateTagRequest represents a new tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"` // Tag label
}

// LinkTagRequest represents attaching a tag to a referendum
type LinkTagRequest struct {
	ReferendumID uint `json:"referendum_id" binding:"required"` // Target referendum
	TagID        uint `json:"tag_id" binding:"required"`        // Tag to attach
}

// ReferendumTagsResponse lists the tags of a single referendum
type ReferendumTagsResponse struct {
	ReferendumID uint         `json:"referendum_id"` // The referendum
	Tags         []domain.Tag `json:"tags"`          // Its tags
}

// ListTagsHandler returns all tags
func ListTagsHandler(tags store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := tags.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateTagHandler creates a new tag (moderator/admin, wired in routing)
func CreateTagHandler(tags store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTagRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tag := domain.Tag{Name: req.Name}
		if err := tags.Create(&tag); err != nil {
			if errors.Is(err, store.ErrConflict) {
				// Duplicate tag name
				c.JSON(http.StatusBadRequest, gin.H{"error": "Tag with this name already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Attempted tag name
				"error": err.Error(), // Error message
			}).Error("Failed to create tag") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
			return
		}
		c.JSON(http.StatusCreated, tag)
	}
}

// DeleteTagHandler removes a tag that is not linked to any referendum
// (moderator/admin, wired in routing)
func DeleteTagHandler(tags store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Query("tag_id")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if idStr == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag_id"})
			return
		}
		if err := tags.Delete(uint(id)); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			case errors.Is(err, store.ErrTagInUse):
				// Linked tags cannot be removed
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete tag: it is used by one or more referendums"})
			default:
				logrus.WithFields(logrus.Fields{
					"tag_id": id,          // Target tag
					"error":  err.Error(), // Error message
				}).Error("Failed to delete tag") // Log deletion failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
	}
}

// GetReferendumTagsHandler returns the tags linked to a referendum
func GetReferendumTagsHandler(tags store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Query("referendum_id")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if idStr == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referendum_id"})
			return
		}
		list, err := tags.TagsFor(uint(id))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Referendum not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
			return
		}
		c.JSON(http.StatusOK, ReferendumTagsResponse{ReferendumID: uint(id), Tags: list})
	}
}

// LinkTagHandler attaches a tag to a referendum (moderator/admin, wired in
// routing)
func LinkTagHandler(tags store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LinkTagRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tag, err := tags.Link(req.ReferendumID, req.TagID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Referendum or tag not found"})
			case errors.Is(err, store.ErrConflict):
				// Link already exists
				c.JSON(http.StatusBadRequest, gin.H{"error": "Tag already assigned to this referendum"})
			default:
				logrus.WithFields(logrus.Fields{
					"referendum_id": req.ReferendumID, // Target referendum
					"tag_id":        req.TagID,        // Tag to attach
					"error":         err.Error(),      // Error message
				}).Error("Failed to link tag") // Log link failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link tag"})
			}
			return
		}
		c.JSON(http.StatusCreated, tag)
	}
}

// UnlinkTagHandler detaches a tag from a referendum (moderator/admin, wired
// in routing)
func UnlinkTagHandler(tags store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		refStr := c.Query("referendum_id")
		tagStr := c.Query("tag_id")
		refID, errRef := strconv.ParseUint(refStr, 10, 32)
		tagID, errTag := strconv.ParseUint(tagStr, 10, 32)
		if refStr == "" || tagStr == "" || errRef != nil || errTag != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referendum_id or tag_id"})
			return
		}
		if err := tags.Unlink(uint(refID), uint(tagID)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag is not assigned to this referendum"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"referendum_id": refID,       // Target referendum
				"tag_id":        tagID,       // Tag to detach
				"error":         err.Error(), // Error message
			}).Error("Failed to unlink tag") // Log unlink failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlink tag"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tag removed from referendum"})
	}
}
