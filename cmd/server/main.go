package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/softzcar/ninesys-msg/auth"
	"github.com/softzcar/ninesys-msg/internal/config"
	"github.com/softzcar/ninesys-msg/internal/mainapi"
	"github.com/softzcar/ninesys-msg/server"
	"github.com/softzcar/ninesys-msg/sessions"
	"github.com/softzcar/ninesys-msg/whatsapp"
	"github.com/softzcar/ninesys-msg/whatsapp/wmeow"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	repo := sessions.NewInMemoryRepo()
	store := whatsapp.NewFolderStore(c.GetDataFolder())
	factory := wmeow.NewFactory(store, log.Logger)
	manager := whatsapp.NewManager(repo, factory, store, whatsapp.ManagerConfig{
		PollInterval:  c.GetPollInterval(),
		StatusTimeout: c.GetStatusTimeout(),
		RecoveryDelay: c.GetRecoveryDelay(),
		SendDelay:     c.GetSendDelay(),
	}, log.Logger)

	tokens, err := auth.NewTokenManager(c.GetJWTSecret(), c.GetTokenExpiry())
	if err != nil {
		return fmt.Errorf("auth.NewTokenManager: %w", err)
	}
	verifier := auth.NewMainAPIVerifier(mainapi.New(c.GetAPIURL()))
	authService, err := auth.NewService(verifier, tokens)
	if err != nil {
		return fmt.Errorf("auth.NewService: %w", err)
	}

	srv, err := server.New(c, manager, authService)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	recoveryCtx, cancelRecovery := context.WithCancel(context.Background())
	defer cancelRecovery()
	go manager.RecoverAll(recoveryCtx)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	cancelRecovery()
	returnError = shutdown(httpServer, manager)
	return returnError
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server, manager *whatsapp.Manager) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	manager.Shutdown(ctx)
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
