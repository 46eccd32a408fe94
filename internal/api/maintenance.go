package api

import (
	"net/http" // HTTP status codes

	"referendum_system/internal/store" // Persistence layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SweepOrphanVotesHandler removes votes whose owning user has been deleted
// (admin only, wired in routing). Orphans are tolerated between sweeps to
// preserve historical vote counts; the sweep is idempotent and safe to
// re-run at any time.
func SweepOrphanVotesHandler(votes store.VoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := votes.DeleteOrphans()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Orphan vote sweep failed") // Log sweep failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep orphaned votes"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"deleted": deleted, // Number of removed votes
		}).Info("Orphan vote sweep completed") // Log sweep result
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
