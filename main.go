package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fdo-backends/portal-settings/configs"
	"github.com/fdo-backends/portal-settings/handlers"
	"github.com/fdo-backends/portal-settings/portal"
	"github.com/fdo-backends/portal-settings/settings"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

const version = "0.3.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting settings portal")

	// Settings store & service
	store := settings.NewMemoryStore()

	var svcOpts []settings.ServiceOption
	if cfg.WriteMaxRate > 0 {
		svcOpts = append(svcOpts, settings.WithWriteRatelimiter(ratelimit.New(cfg.WriteMaxRate)))
	}

	service := settings.NewService(store, svcOpts...)

	if cfg.DefaultsPath != "" {
		if err := settings.ApplyDefaultsFile(service, cfg.DefaultsPath); err != nil {
			log.Fatal(err)
		}
		log.WithFields(log.Fields{"path": cfg.DefaultsPath}).Info("Applied defaults file")
	}

	// Setting changed webhook
	notifications, err := settings.NewNotificationConfig(cfg.SettingChangedWebhookUrl, cfg.SettingChangedWebhookTimeout)
	if err != nil {
		log.Fatal(err)
	}
	if notifications != nil {
		settings.SettingChanged.Register(notifications)
	}

	// Session bus
	if !cfg.DisableBus {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				log.Warn(err)
			}
			log.Info("Closed session bus connection")
		}()

		p := portal.New(conn, service)
		if err := p.Register(); err != nil {
			log.Fatal(err)
		}
		defer p.Release()
	} else {
		log.Info("session bus disabled")
	}

	// HTTP handling
	var srv *http.Server
	if !cfg.DisableGateway {
		settingsHandler := handlers.NewSettings(service)

		watcher := handlers.NewWatcher()
		settings.SettingChanged.Register(watcher)

		r := mux.NewRouter()

		// Catch the api version
		rv := r.PathPrefix("/{apiVersion}").Subrouter()

		// Debug
		rv.Handle("/debug", handlers.Debug("https://github.com/fdo-backends/portal-settings", sha1ver, buildTime)).Methods(http.MethodGet)

		// Health
		rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)
		rv.Handle("/health/liveness", handlers.Liveness(func() (interface{}, error) {
			return service.Status()
		})).Methods(http.MethodGet)

		// Settings
		rv.Handle("/settings", settingsHandler.List()).Methods(http.MethodGet)                      // list
		rv.Handle("/settings/watch", watcher.Watch()).Methods(http.MethodGet)                       // change stream
		rv.Handle("/settings/{namespace}/{key}", settingsHandler.Details()).Methods(http.MethodGet) // details
		rv.Handle("/settings/{namespace}/{key}", settingsHandler.Set()).Methods(http.MethodPost)    // write

		h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
		h = handlers.UseCors(h)
		h = handlers.UseLogging(h)
		h = handlers.UseCompress(h)

		if !cfg.DisableIdempotencyMiddleware {
			h = handlers.UseIdempotency(h, handlers.IdempotencyHandlerOptions{
				Expiry: cfg.IdempotencyKeyExpiry,
			}, handlers.NewIdempotencyStoreLocal())
		}

		// Server boilerplate
		srv = &http.Server{
			Handler:      h,
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
			ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
		}

		// Run our server in a goroutine so that it doesn't block.
		go func() {
			log.
				WithFields(log.Fields{
					"host": cfg.Host,
					"port": cfg.Port,
				}).
				Info("Server listening")
			if err := srv.ListenAndServe(); err != nil {
				log.Warn(err)
			}
		}()
	} else {
		log.Info("admin gateway disabled")
	}

	// Trap interupt or sigterm and gracefully shutdown the server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal.
	sig := <-c

	log.Infof("Got signal: %s. Shutting down..", sig)

	if srv != nil {
		// Create a deadline to wait for.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warnf("Error in server shutdown: %s", err)
		}
	}
}
