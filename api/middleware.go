package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
	pubSubTokenPayloadKey   = "pubSubTokenPayload"

	requestIDHeaderKey = "X-Request-ID"
	requestIDKey       = "requestID"
)

// pubSubAuthMiddleware verifies the Google-signed OIDC token Pub/Sub attaches to push requests.
func pubSubAuthMiddleware(validator IDTokenValidator, audience string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorizationHeader := ctx.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		authorizationHeaderType := fields[0]
		if authorizationHeaderType != authorizationTypeBearer {
			err := errors.New("unsupported authorization header type")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		idToken := fields[1]
		payload, err := validator.Validate(ctx, idToken, audience)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(ErrInvalidIDToken))
			return
		}

		ctx.Set(pubSubTokenPayloadKey, payload)
		ctx.Next()
	}
}

// requestIDMiddleware tags every request with an id, reusing the caller's when present.
func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeaderKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(requestIDKey, requestID)
		ctx.Header(requestIDHeaderKey, requestID)
		ctx.Next()
	}
}
