// Package server exposes a ledger service over HTTP. Every write goes
// through the same Apply path as the CLI, so a client that retries a
// command with the same id gets the original result back.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/validation"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the Gin engine serving svc.
func NewRouter(svc *service.Service, log *zap.SugaredLogger) *gin.Engine {
	validation.Register()

	h := &Handler{svc: svc}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogging(log))
	router.Use(ErrorHandler(log))

	router.GET("/health", h.Health)

	accounts := router.Group("/accounts")
	accounts.GET("", h.ListAccounts)
	accounts.POST("", h.CreateAccount)
	accounts.GET("/:id", h.GetAccount)
	accounts.PATCH("/:id", h.UpdateAccount)
	accounts.GET("/:id/transactions", h.ListAccountTransactions)

	transactions := router.Group("/transactions")
	transactions.GET("", h.ListTransactions)
	transactions.POST("", h.AddTransaction)

	commands := router.Group("/commands")
	commands.GET("", h.ListCommands)
	commands.POST("", h.ApplyCommand)
	commands.GET("/:id", h.HasCommand)

	router.GET("/verify", h.Verify)
	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Infow("shutting down", "addr", addr)
	return srv.Shutdown(shutdownCtx)
}
