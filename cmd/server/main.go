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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/go-token-service/grants"
	"github.com/jrsteele09/go-token-service/internal/config"
	"github.com/jrsteele09/go-token-service/internal/metrics"
	registryyaml "github.com/jrsteele09/go-token-service/registry/yamlrepo"
	"github.com/jrsteele09/go-token-service/server"
	"github.com/jrsteele09/go-token-service/ticket"
	"github.com/jrsteele09/go-token-service/ticket/memstore"
	"github.com/jrsteele09/go-token-service/ticket/redisstore"
	"github.com/jrsteele09/go-token-service/token"
	"github.com/jrsteele09/go-token-service/users"
	usersyaml "github.com/jrsteele09/go-token-service/users/yamlrepo"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
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

	c := config.New()
	displayAppname(c.GetAppName())
	logger := newLogger(c.GetEnv())

	store, err := newTicketStore(c, logger)
	if err != nil {
		return fmt.Errorf("ticket store: %w", err)
	}

	registry, err := registryyaml.Load(c.GetServicesFile())
	if err != nil {
		return fmt.Errorf("service registry: %w", err)
	}

	userRepo, err := usersyaml.Load(c.GetUsersFile())
	if err != nil {
		return fmt.Errorf("user repo: %w", err)
	}

	policy := ticket.Policy{
		AuthorizationCodeTTL: c.GetAuthCodeExpiry(),
		AccessTokenTTL:       c.GetAccessTokenExpiry(),
		RefreshTokenTTL:      c.GetRefreshTokenExpiry(),
	}

	issuerOptions := []token.IssuerOption{}
	if secret := c.GetJWTSecret(); secret != "" {
		issuerOptions = append(issuerOptions, token.WithSigner(token.NewHMACSigner(secret), c.GetIssuer()))
	}
	issuer, err := token.NewIssuer(store, policy, issuerOptions...)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	pipeline, err := grants.NewPipeline(store, registry, users.NewAuthenticator(userRepo), issuer, logger)
	if err != nil {
		return fmt.Errorf("grant pipeline: %w", err)
	}

	appServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, pipeline, registry, logger)}
	metricsServer := &http.Server{Addr: c.GetMetricsPort(), Handler: metrics.Handler()}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error { return listenAndServe(appServer, logger) })
	g.Go(func() error { return listenAndServe(metricsServer, logger) })
	g.Go(func() error {
		waitForStopSignal(ctx)
		return shutdown(appServer, metricsServer)
	})
	return g.Wait()
}

func newLogger(env string) zerolog.Logger {
	if env == "DEV" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func newTicketStore(c config.Config, logger zerolog.Logger) (ticket.Store, error) {
	switch backend := c.GetStoreBackend(); backend {
	case "memory":
		logger.Info().Msg("using in-memory ticket store")
		return memstore.New(c.GetStoreCleanupInterval()), nil
	case "redis":
		logger.Info().Str("addr", c.GetRedisAddr()).Msg("using redis ticket store")
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.New(client), nil
	default:
		return nil, fmt.Errorf("unknown ticket store backend %q", backend)
	}
}

func listenAndServe(srv *http.Server, logger zerolog.Logger) error {
	logger.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal(ctx context.Context) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}
}

func shutdown(servers ...*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
