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

// CastVoteRequest represents a vote submission
type CastVoteRequest struct {
	ReferendumID uint  `json:"referendum_id" binding:"required"` // Target referendum
	Value        *bool `json:"vote_value" binding:"required"`    // Pointer so "false" passes required
}

// CastVoteHandler records one yes/no vote for the authenticated user. The
// single-vote-per-user-per-referendum invariant is enforced by the store
// inside one transaction; there is no vote update endpoint.
func CastVoteHandler(votes store.VoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CastVoteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		vote, err := votes.CastVote(userID.(uint), req.ReferendumID, *req.Value)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Referendum not found"})
			case errors.Is(err, store.ErrNotVotable):
				c.JSON(http.StatusConflict, gin.H{"error": "Referendum is not open for voting"})
			case errors.Is(err, store.ErrDuplicateVote):
				c.JSON(http.StatusBadRequest, gin.H{"error": "You have already voted on this referendum"})
			default:
				logrus.WithFields(logrus.Fields{
					"user_id":       userID,           // Voting user
					"referendum_id": req.ReferendumID, // Target referendum
					"error":         err.Error(),      // Error message
				}).Error("Failed to cast vote") // Log vote failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
			}
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":       vote.UserID,       // Voting user
			"referendum_id": vote.ReferendumID, // Target referendum
			"vote_value":    vote.Value,        // Cast value
		}).Info("Vote cast") // Log accepted vote
		c.JSON(http.StatusCreated, vote)
	}
}

// GetVotesHandler looks up votes by id, referendum or user
func GetVotesHandler(votes store.VoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lookup by ID takes precedence
		if idStr := c.Query("vote_id"); idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote_id"})
				return
			}
			vote, err := votes.GetByID(uint(id))
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Vote not found"})
				return
			}
			c.JSON(http.StatusOK, []domain.Vote{*vote})
			return
		}
		var referendumID, userID uint
		if idStr := c.Query("referendum_id"); idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referendum_id"})
				return
			}
			referendumID = uint(id)
		}
		if idStr := c.Query("user_id"); idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
				return
			}
			userID = uint(id)
		}
		list, err := votes.List(referendumID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch votes"})
			return
		}
		// A referendum filter that matches nothing yields not found, with or
		// without an additional user filter
		if referendumID != 0 && len(list) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vote not found"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
