package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Token TTL

	"referendum_system/internal/config" // Application configuration
	"referendum_system/internal/domain" // Importing domain models
	"referendum_system/internal/store"  // Persistence layer
	"referendum_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Password string `json:"password" binding:"required"`    // Plaintext password, hashed before storage
	Role     string `json:"role"`                           // Optional role, defaults to user
}

// TokenResponse represents the bearer token issued on login
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed JWT
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// RegisterHandler creates a new user account
func RegisterHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default and validate the role
		if req.Role == "" {
			req.Role = domain.RoleUser
		}
		if !domain.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		// Hash the password; the plaintext is never stored or logged
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase username and email to ensure uniqueness
		user := domain.User{
			Username:     strings.ToLower(req.Username), // Unique username
			Email:        strings.ToLower(req.Email),    // Unique email
			PasswordHash: hash,                          // Stored credential
			Role:         req.Role,                      // Validated role
		}
		// Attempt to create the user in the database
		if err := users.Create(&user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				// Duplicate username or email
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already registered"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": user.Username, // Attempted username
				"error":    err.Error(),   // Error message
			}).Error("Failed to register user") // Log registration failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Return the created record; the hash field is never serialized
		c.JSON(http.StatusCreated, user)
	}
}

// GetUsersHandler looks up users by id, email or role
func GetUsersHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lookup by ID takes precedence
		if idStr := c.Query("user_id"); idStr != "" {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
				return
			}
			user, err := users.GetByID(uint(id))
			if err != nil {
				// Missing ID filter yields not found
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusOK, []domain.User{*user})
			return
		}
		// Lookup by email
		if email := c.Query("email"); email != "" {
			user, err := users.FindByEmail(strings.ToLower(email))
			if err != nil {
				// Missing email filter yields not found
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusOK, []domain.User{*user})
			return
		}
		// Role filter or full listing; an empty result is not an error
		list, err := users.List(c.Query("role"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// TokenHandler verifies HTTP Basic credentials and issues a bearer token
func TokenHandler(users store.UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth() // HTTP Basic credentials in
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		user, err := users.FindByUsername(strings.ToLower(username)) // Fetch user from database
		// Unknown username and wrong password are indistinguishable to the caller
		if err != nil || !utils.CheckPassword(password, user.PasswordHash) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		// Issue a signed time-limited token for the verified identity
		ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
		token, err := utils.GenerateJWT(user.ID, cfg.JWTSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the bearer token in the response
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// DeleteUserHandler removes a user account (admin only, wired in routing).
// Votes cast by the user survive as orphans until the maintenance sweep.
func DeleteUserHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Query("user_id")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if idStr == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		user, err := users.Delete(uint(id))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": id,          // Target user ID
				"error":   err.Error(), // Error message
			}).Error("Failed to delete user") // Log deletion failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Deleted user ID
			"username": user.Username, // Deleted username
		}).Info("User deleted") // Log deletion
		c.JSON(http.StatusOK, user)
	}
}
