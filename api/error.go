package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidIDToken   = errors.New("invalid or expired identity token")
	ErrMissingSignature = errors.New("signature header is not provided")
	ErrInvalidSignature = errors.New("signature does not match request body")
	ErrTaskNotFound     = errors.New("no task found for this message")
	ErrBodyTooLarge     = errors.New("request body is too large")
)

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
