package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoanglb/billiards-store/internal/admin"
)

// loginHandler answers {"success": true|false} and nothing else: a missing
// account and a wrong password are indistinguishable to the caller.
func loginHandler(repo admin.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}

		acc, err := repo.GetByUsername(c.Request.Context(), req.Username)
		if err != nil {
			if errors.Is(err, admin.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": false})
				return
			}
			log.Printf("[auth] login lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": admin.CheckPassword(acc.PasswordHash, req.Password)})
	}
}
