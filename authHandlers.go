package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/models"
	"github.com/returnukhti/resi_backend/utils"
)

// errorStatus maps the error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case utils.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrorDuplicateRecord):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, funcName string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		config.LogError(config.GetLogger(), "handlers", funcName, "request failed", nil, err)
		c.JSON(status, gin.H{"error": "server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		user, err := models.Register(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "registerHandler", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "registration successful",
			"user":    user,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		info, err := models.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			// Wrong credentials read the same as an unknown account.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "login successful",
			"token":   info.Token,
			"user":    info.User,
		})
	}
}
