package handler

import (
	"profile-app-go/internal/config"
	userdomain "profile-app-go/internal/domain/user"
	"profile-app-go/pkg/logger"
)

type Handlers struct {
	Users *userdomain.Service

	auth config.AuthConfig
	log  logger.Logger
}

func New(users *userdomain.Service, authCfg config.AuthConfig, log logger.Logger) *Handlers {
	return &Handlers{
		Users: users,
		auth:  authCfg,
		log:   log,
	}
}
