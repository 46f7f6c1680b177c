package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motlib/library-service/config"
	"github.com/motlib/library-service/internal/handler"
	"github.com/motlib/library-service/internal/repository"
	"github.com/motlib/library-service/internal/server"
	"github.com/motlib/library-service/internal/service"
	"github.com/motlib/library-service/internal/store"
	"github.com/motlib/library-service/migrations"
	"github.com/motlib/library-service/pkg/gemini"
	"github.com/motlib/library-service/pkg/logger"
	"github.com/motlib/library-service/pkg/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")

	db, err := sqlite.NewDB(context.Background(), &cfg.Session, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("session db init %v", err)
	}
	sessions, err := repository.NewSessionRepository(db, log)
	if err != nil {
		return fmt.Errorf("session repo %v", err)
	}

	st := store.New(log)
	if cfg.Seed {
		st.Seed()
	}

	generator := gemini.NewClient(cfg.Gemini, log)
	catalogSvc := service.NewCatalogService(st, generator, log)
	requestSvc := service.NewRequestService(st, log)
	borrowSvc := service.NewBorrowService(st, log)
	authSvc := service.NewAuthService(st, sessions, log)
	statsSvc := service.NewStatsService(st, log)

	h := handler.New(catalogSvc, requestSvc, borrowSvc, authSvc, statsSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(srv.Run)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	case <-gctx.Done():
		log.Error("server stopped", zap.Error(gctx.Err()))
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("db.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
