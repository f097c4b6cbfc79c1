package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"merchstore/internal/auth"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		sess := currentSession(c)
		if err := sess.Auth.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
			var authErr *auth.AuthError
			if errors.As(err, &authErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Message})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "sign up failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "registered"})
	}
}

func signInHandler(identity identityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		sess := currentSession(c)
		if err := sess.Auth.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
			var authErr *auth.AuthError
			if errors.As(err, &authErr) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "sign in failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":  sess.Auth.CurrentUser(),
			"token": identity.SessionToken(sess.ID),
		})
	}
}

func signOutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.Auth.SignOut(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "signed out"})
	}
}

// currentUserHandler reports the session's signed-in user. A bearer token in
// the Authorization header is accepted as an alternative for API clients.
func currentUserHandler(identity identityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if u := sess.Auth.CurrentUser(); u != nil {
			c.JSON(http.StatusOK, gin.H{"user": u})
			return
		}
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			u, err := identity.UserByToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
			if err == nil {
				c.JSON(http.StatusOK, gin.H{"user": u})
				return
			}
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
	}
}
