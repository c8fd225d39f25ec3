package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"fieldtrack"
	"fieldtrack/internal/api/handler/endpoints"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	fieldtrack.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if fieldtrack.GetConfig().Mode == "dev" {
		if err := fieldtrack.DB.AutoMigrate(
			&models.Employee{},
			&models.Task{},
			&models.LocationLog{},
		); err != nil {
			fieldtrack.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		fieldtrack.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(fieldtrack.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// One hub per process: connection registry + broadcast channel
	hub := ws.NewHub(fieldtrack.Logger)
	publisher := ws.NewTaskPublisher(hub, fieldtrack.Logger)
	fieldtrack.Logger.Info().Msg("Broadcast hub started")

	// Optional: re-broadcast task mutations committed by the external
	// task collaborator
	if natsCfg := fieldtrack.GetConfig().NatsConfig; natsCfg.URL != "" {
		bridge, err := ws.NewNATSBridge(natsCfg.URL, natsCfg.TaskSubject, publisher, fieldtrack.Logger)
		if err != nil {
			fieldtrack.Logger.Fatal().Err(err).Msg("Failed to connect NATS bridge")
		}
		defer bridge.Close()
		if err := bridge.Subscribe(); err != nil {
			fieldtrack.Logger.Fatal().Err(err).Msg("Failed to subscribe NATS bridge")
		}
	}

	initAPI(router, hub, publisher)

	fieldtrack.Logger.Debug().Msgf("Starting API on port %s", fieldtrack.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fieldtrack.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, hub *ws.Hub, publisher *ws.TaskPublisher) {
	endpoints.AuthHandler(router)
	endpoints.TaskHandler(router, publisher)
	endpoints.LocationHandler(router, hub)
	endpoints.WSHandler(router, hub)
}
