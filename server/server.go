package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/rolodex/server/cron"
	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/server/service"
	"github.com/Daskott/rolodex/server/validation"
	"github.com/Daskott/rolodex/shared"
	"github.com/go-playground/validator"
	"github.com/spf13/viper"
)

var logg = logger.NewLogger()

// Start reads the server config, opens the database & serves the api until
// the process receives SIGINT or SIGTERM.
func Start(config *viper.Viper, devMode bool) {
	serverConfig, err := LoadServerConfig(config)
	fatalOnError(err)

	backup, err := newSqliteBackup(serverConfig)
	fatalOnError(err)

	// Pull the db from google storage if it exists, before the db is opened
	if backup != nil {
		fatalOnError(backup.restore(context.Background()))
	}

	db, err := models.OpenDB(serverConfig.Database, devMode)
	fatalOnError(err)
	fatalOnError(models.AutoMigrate(db))

	fieldValidator, err := validation.New()
	fatalOnError(err)

	userService := service.NewUserService(models.NewStore(db), fieldValidator)

	scheduler := cron.NewCronScheduler(serverConfig.Rolodex.TimeZone)
	if backup != nil {
		backup.db = db
		fatalOnError(backup.schedule(scheduler, serverConfig.Google.Storage.SqliteBackupSchedule))
	}
	scheduler.StartAsync()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", serverConfig.Rolodex.Listener.Port),
		Handler:      newRouter(userService, serverConfig.Rolodex.Cors),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go serve(server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cleanup(scheduler, server, db, backup)
}

// LoadServerConfig unmarshals & validates the server config held by config
func LoadServerConfig(config *viper.Viper) (shared.ServerConfig, error) {
	serverConfig := shared.ServerConfig{}

	err := config.Unmarshal(&serverConfig)
	if err != nil {
		return serverConfig, fmt.Errorf("unable to decode server config: %v", err)
	}

	err = validator.New().Struct(serverConfig)
	if err != nil {
		return serverConfig, fmt.Errorf("invalid server config: %v", err)
	}

	return serverConfig, nil
}
