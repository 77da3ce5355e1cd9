package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"annoscope/api"
	"annoscope/router"
	"annoscope/store"
	"annoscope/utils"
	"annoscope/views"
)

func main() {
	log.Info("Starting annoscope...")

	// Generate our config based on the config supplied
	// by the user in the flags
	configPath, debugMode, err := utils.ParseFlags()
	if err != nil {
		log.Fatal(err)
	}
	config, err := utils.NewConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := utils.SetupLogging(config.Log, debugMode); err != nil {
		log.Fatal(err)
	}

	// Debug mode enables gin-gonic debug mode
	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := api.NewClient(
		config.API.BaseURL,
		api.WithToken(config.API.Token),
		api.WithTimeout(config.API.Timeout),
	)
	if err != nil {
		log.Fatal(err)
	}
	log.Info(fmt.Sprintf("Using annotation API at %s", client.BaseURL()))

	session := store.NewSession(client, config.Store)
	defer session.Close()

	srv := &http.Server{
		Addr:        config.Server.Addr(),
		Handler:     router.New(views.New(session, client)),
		ReadTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Info(fmt.Sprintf("Web client listening on %s", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown web client ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server Shutdown: ", err)
	}
	log.Info("Web client exiting")
}
