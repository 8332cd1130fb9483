package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/katatrina/message-notifier/internal/ingest"
	"github.com/katatrina/message-notifier/internal/notification"
	"github.com/katatrina/message-notifier/internal/util"
	"github.com/katatrina/message-notifier/internal/worker"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"
	"google.golang.org/api/idtoken"
)

// MessageIngestor is implemented by *ingest.Pipeline.
type MessageIngestor interface {
	Ingest(ctx context.Context, event *dispatcher.MessageEvent, source string) ingest.Receipt
}

// IDTokenValidator is implemented by *idtoken.Validator.
type IDTokenValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

type Server struct {
	router           *gin.Engine
	httpServer       *http.Server
	config           *util.Config
	pipeline         MessageIngestor
	stats            *ingest.Stats
	taskInspector    worker.TaskInspector
	idTokenValidator IDTokenValidator
	serviceWorker    []byte
}

type ServerOption func(*Server)

// WithTaskInspector exposes queued task state; only meaningful in queue mode.
func WithTaskInspector(taskInspector worker.TaskInspector) ServerOption {
	return func(server *Server) {
		server.taskInspector = taskInspector
	}
}

func WithIDTokenValidator(validator IDTokenValidator) ServerOption {
	return func(server *Server) {
		server.idTokenValidator = validator
	}
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(config *util.Config, pipeline MessageIngestor, stats *ingest.Stats, opts ...ServerOption) (*Server, error) {
	server := &Server{
		config:   config,
		pipeline: pipeline,
		stats:    stats,
	}

	for _, opt := range opts {
		opt(server)
	}

	// Create a new Google ID token validator for Pub/Sub push requests
	if config.PubSubAudience != "" && server.idTokenValidator == nil {
		validator, err := idtoken.NewValidator(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create google id token validator: %w", err)
		}
		server.idTokenValidator = validator
		log.Info().Msg("Google ID token validator created successfully ✅")
	}

	serviceWorker, err := notification.RenderServiceWorker(notification.WebConfig{
		SDKVersion:        config.FirebaseJSSDKVersion,
		APIKey:            config.FirebaseWebAPIKey,
		AuthDomain:        config.FirebaseWebAuthDomain,
		ProjectID:         config.FirebaseProjectID,
		StorageBucket:     config.FirebaseWebStorageBucket,
		MessagingSenderID: config.FirebaseWebMessagingSenderID,
		AppID:             config.FirebaseWebAppID,
		Icon:              config.NotificationIcon,
	})
	if err != nil {
		return nil, err
	}
	server.serviceWorker = serviceWorker

	server.setupRouter()
	server.httpServer = &http.Server{
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", server.getHealth)
	router.GET("/firebase-messaging-sw.js", server.getServiceWorker)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")

	// Push subscription từ Pub/Sub (Eventarc / Firestore triggers)
	if server.config.PubSubAudience != "" {
		v1.POST("/pubsub/messages", pubSubAuthMiddleware(server.idTokenValidator, server.config.PubSubAudience), server.receivePubSubMessage)
	}

	// Webhook ký bằng HMAC cho các nguồn sự kiện khác
	if server.config.WebhookSecret != "" {
		v1.POST("/webhooks/messages", server.receiveWebhookMessage)
	}

	if server.taskInspector != nil {
		v1.GET("/messages/:messageID/task", server.getMessageTask)
	}

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	server.httpServer.Addr = address

	err := server.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// StartTunnel serves the same routes through an ngrok tunnel, for receiving pushes in development.
func (server *Server) StartTunnel(ctx context.Context, authToken string) error {
	tunnel, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtoken(authToken))
	if err != nil {
		return fmt.Errorf("failed to open ngrok tunnel: %w", err)
	}
	log.Info().Str("url", tunnel.URL()).Msg("ngrok tunnel established ✅")

	go func() {
		<-ctx.Done()
		tunnel.Close()
	}()

	err = http.Serve(tunnel, server.router)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (server *Server) Shutdown(ctx context.Context) error {
	return server.httpServer.Shutdown(ctx)
}

// @Summary		Health check
// @Tags			system
// @Produce		json
// @Success		200	{object}	object	"Service status with dispatch counters"
// @Router			/health [get]
func (server *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"stats":  server.stats.Snapshot(),
	})
}
