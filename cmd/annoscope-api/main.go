package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"annoscope/controllers"
	"annoscope/models"
	"annoscope/utils"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for this subject and exit")

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
	backend := config.Backend

	if *issueToken != "" {
		if backend.Auth.Secret == "" {
			log.Fatal("backend.auth.secret is not set")
		}
		token, err := controllers.IssueToken(backend.Auth.Secret, *issueToken, backend.Auth.TokenTTL)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		return
	}

	log.Info("Starting annoscope API...")
	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := models.ConnectDataBase(backend.Database.Driver, backend.Database.DSN, debugMode)
	if err != nil {
		log.Fatal(err)
	}
	storage, err := controllers.NewStorage(backend.StorageDir)
	if err != nil {
		log.Fatal(err)
	}
	if backend.Auth.Secret == "" {
		log.Warn("No auth secret configured, the API accepts anonymous requests")
	}

	srv := &http.Server{
		Addr:         backend.Addr(),
		Handler:      controllers.NewRouter(controllers.NewController(db, storage, backend)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Info(fmt.Sprintf("API listening on %s", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server Shutdown: ", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server exiting")
}
