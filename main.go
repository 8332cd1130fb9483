package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katatrina/message-notifier/api"
	"github.com/katatrina/message-notifier/internal/alert"
	"github.com/katatrina/message-notifier/internal/dedup"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/katatrina/message-notifier/internal/event"
	"github.com/katatrina/message-notifier/internal/ingest"
	"github.com/katatrina/message-notifier/internal/notification"
	"github.com/katatrina/message-notifier/internal/profile"
	"github.com/katatrina/message-notifier/internal/util"
	"github.com/katatrina/message-notifier/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	_ "github.com/katatrina/message-notifier/docs"
)

const shutdownTimeout = 10 * time.Second

//	@title			Message Notifier API
//	@version		1.0.0
//	@description	Push notifications for new chat messages

//	@host		localhost:8080
//	@BasePath	/
//	@schemes	http https

//	@securityDefinitions.apikey	googleIDToken
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the Google-signed OIDC token attached by Pub/Sub.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Firebase App
	var clientOpts []option.ClientOption
	if config.GoogleCredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(config.GoogleCredentialsFile))
	}

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: config.FirebaseProjectID}, clientOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase app 😣")
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create firestore client 😣")
	}
	defer firestoreClient.Close()
	log.Info().Msg("firestore client created successfully ✅")

	pushService, err := notification.NewPushService(ctx, firebaseApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create push service 😣")
	}

	users := newUserLookup(ctx, config, firestoreClient)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	defer redisDb.Close()

	stats := ingest.NewStats()
	pipelineOpts := []ingest.Option{}

	if config.DedupTTL > 0 {
		pipelineOpts = append(pipelineOpts, ingest.WithClaimer(dedup.NewRedisClaimer(redisDb, dedup.WithTTL(config.DedupTTL))))
	}

	if config.AlertsEnabled() {
		alerter, err := alert.NewDiscordAlerter(config.DiscordBotToken, config.DiscordChannelID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create discord alerter 😣")
		}
		pipelineOpts = append(pipelineOpts, ingest.WithAlerter(alerter))
		log.Info().Msg("discord alerts enabled ✅")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}

	var serverOpts []api.ServerOption
	queueMode := config.DispatchMode == util.DispatchModeQueue
	if queueMode {
		distributor := worker.NewTaskDistributor(redisOpt, config.DedupTTL)
		pipelineOpts = append(pipelineOpts, ingest.WithDistributor(distributor))
		serverOpts = append(serverOpts, api.WithTaskInspector(worker.NewTaskInspector(redisOpt)))
	}

	messageDispatcher := dispatcher.New(users, pushService)
	pipeline := ingest.NewPipeline(messageDispatcher, stats, pipelineOpts...)

	server, err := api.NewServer(&config, pipeline, stats, serverOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	reporter, err := ingest.NewReporter(stats, config.StatsInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create stats reporter 😣")
	}

	g, ctx := errgroup.WithContext(ctx)

	if queueMode {
		runTaskProcessor(ctx, g, redisOpt, pipeline)
	}

	if config.ListenerEnabled {
		listener := event.NewMessageListener(firestoreClient, config.MessagesCollection, pipeline)
		g.Go(func() error {
			return listener.Run(ctx)
		})
	}

	g.Go(func() error {
		if err := reporter.Start(); err != nil {
			return err
		}
		<-ctx.Done()
		return reporter.Stop()
	})

	runHTTPServer(ctx, g, config, server)

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("notifier stopped with error 😣")
	}

	log.Info().Msg("notifier stopped gracefully")
}

func newUserLookup(ctx context.Context, config util.Config, firestoreClient *firestore.Client) dispatcher.UserLookup {
	if config.ProfileStore != util.ProfileStorePostgres {
		return profile.NewFirestoreStore(firestoreClient, config.UsersCollection)
	}

	// Create connection pool
	connPool, err := pgxpool.New(ctx, config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(ctx)
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	return profile.NewPostgresStore(connPool)
}

func runTaskProcessor(ctx context.Context, g *errgroup.Group, redisOpt asynq.RedisClientOpt, pipeline *ingest.Pipeline) {
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, func(ctx context.Context, event *dispatcher.MessageEvent) {
		pipeline.Process(ctx, event)
	})

	g.Go(func() error {
		log.Info().Msg("task processor started ✅")
		if err := taskProcessor.Start(); err != nil {
			return err
		}

		<-ctx.Done()
		taskProcessor.Shutdown()
		log.Info().Msg("task processor stopped")
		return nil
	})
}

func runHTTPServer(ctx context.Context, g *errgroup.Group, config util.Config, server *api.Server) {
	g.Go(func() error {
		log.Info().Str("address", config.HTTPServerAddress).Msg("HTTP server started ✅")
		return server.Start(config.HTTPServerAddress)
	})

	if config.NgrokAuthToken != "" {
		g.Go(func() error {
			return server.StartTunnel(ctx, config.NgrokAuthToken)
		})
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		log.Info().Msg("HTTP server stopped")
		return nil
	})
}
