package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"tripsplit-go/internal/auth"
	"tripsplit-go/internal/config"
	"tripsplit-go/internal/db"
	ledgerdomain "tripsplit-go/internal/domain/ledger"
	repaymentdomain "tripsplit-go/internal/domain/repayment"
	tripdomain "tripsplit-go/internal/domain/trip"
	userdomain "tripsplit-go/internal/domain/user"
	ledgerrepo "tripsplit-go/internal/repository/postgres/ledger"
	repaymentrepo "tripsplit-go/internal/repository/postgres/repayment"
	triprepo "tripsplit-go/internal/repository/postgres/trip"
	userrepo "tripsplit-go/internal/repository/postgres/user"
	"tripsplit-go/internal/transport/httpserver"
	"tripsplit-go/internal/transport/httpserver/handler"
	authmw "tripsplit-go/internal/transport/httpserver/middleware"
	"tripsplit-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	trips := tripdomain.NewService(triprepo.NewPostgres(dbConn))
	ledger := ledgerdomain.NewService(ledgerrepo.NewPostgres(dbConn))
	repayments := repaymentdomain.NewService(repaymentrepo.NewPostgres(dbConn))

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	secureCookies := cfg.Env != "development"

	handlers := handler.New(users, trips, ledger, repayments, tokens, cfg.UploadDir, secureCookies, log)
	jwtAuth := authmw.NewJWTAuth(tokens, log)
	metrics := authmw.NewMetrics(prometheus.DefaultRegisterer)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, jwtAuth, metrics)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
