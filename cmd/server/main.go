package main

import (
	"log" // log package is needed for startup logging

	"referendum_system/internal/api"        // Custom package for API handlers
	"referendum_system/internal/config"     // Custom package for configuration
	"referendum_system/internal/db"         // Custom package for database setup
	"referendum_system/internal/domain"     // Custom package for domain models
	"referendum_system/internal/middleware" // Custom package for middleware
	"referendum_system/internal/store"      // Custom package for persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gormDB, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Stores wrap the shared connection
	users := &store.GormUserStore{DB: gormDB}             // User persistence
	referendums := &store.GormReferendumStore{DB: gormDB} // Referendum persistence
	votes := &store.GormVoteStore{DB: gormDB}             // Vote persistence and integrity guard
	tags := &store.GormTagStore{DB: gormDB}               // Tag persistence

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)                                        // Bearer token validation
	moderators := middleware.RequireRoleMiddleware(users, domain.RoleModerator, domain.RoleAdmin) // Moderator or admin gate
	admins := middleware.RequireRoleMiddleware(users, domain.RoleAdmin)                        // Admin gate

	// Health endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Hello!"})
	})

	// User routes
	r.POST("/users", api.RegisterHandler(users))            // Registration endpoint
	r.GET("/users", api.GetUsersHandler(users))             // User lookup endpoint
	r.POST("/users/token", api.TokenHandler(users, cfg))    // Basic-credentials login endpoint
	r.DELETE("/users", auth, admins, api.DeleteUserHandler(users)) // Admin user deletion endpoint

	// Referendum routes
	r.POST("/referendums", auth, api.CreateReferendumHandler(referendums))                 // Proposal endpoint
	r.GET("/referendums", api.GetReferendumsHandler(referendums))                          // Lookup endpoint
	r.PATCH("/referendums", auth, api.UpdateReferendumHandler(referendums, users))         // Whitelisted partial update endpoint
	r.DELETE("/referendums", auth, admins, api.DeleteReferendumHandler(referendums))       // Admin deletion endpoint

	// Vote routes
	r.POST("/votes", auth, api.CastVoteHandler(votes)) // Vote casting endpoint
	r.GET("/votes", api.GetVotesHandler(votes))        // Vote lookup endpoint

	// Tag routes (mutations restricted to moderators/admins)
	r.GET("/tags", api.ListTagsHandler(tags))                                      // Tag listing endpoint
	r.POST("/tags", auth, moderators, api.CreateTagHandler(tags))                  // Tag creation endpoint
	r.DELETE("/tags", auth, moderators, api.DeleteTagHandler(tags))                // Tag deletion endpoint
	r.GET("/tags/referendum", api.GetReferendumTagsHandler(tags))                  // Referendum tags endpoint
	r.POST("/tags/referendum", auth, moderators, api.LinkTagHandler(tags))         // Tag linking endpoint
	r.DELETE("/tags/referendum", auth, moderators, api.UnlinkTagHandler(tags))     // Tag unlinking endpoint

	// Admin maintenance routes
	adminGroup := r.Group("/admin")
	// Protect admin routes with JWT and role middleware
	adminGroup.Use(auth, admins)
	adminGroup.POST("/maintenance/orphan-votes", api.SweepOrphanVotesHandler(votes)) // Orphaned vote sweep endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
