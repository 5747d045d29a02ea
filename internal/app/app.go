package app

import (
	"net/http"

	"gorm.io/gorm"

	"profile-app-go/internal/config"
	"profile-app-go/internal/db"
	userdomain "profile-app-go/internal/domain/user"
	userrepo "profile-app-go/internal/repository/postgres/user"
	"profile-app-go/internal/storage/disk"
	"profile-app-go/internal/transport/httpserver"
	"profile-app-go/internal/transport/httpserver/handler"
	"profile-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	avatarStore := disk.New(cfg.Uploads.Dir)
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn), avatarStore, cfg.Uploads.PublicPrefix)

	handlers := handler.New(userService, cfg.Auth, log)
	router := httpserver.NewRouter(cfg, handlers, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
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
