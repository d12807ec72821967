//go:build wireinject
// +build wireinject

package main

import (
	"Arena/config"
	"Arena/dao"
	"Arena/dao/cache"
	"Arena/handler"
	"Arena/pkg/client"
	"Arena/pkg/errtrack"
	"Arena/pkg/server"
	"Arena/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		errtrack.New,
		client.NewRedisManager,
		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,
		server.NewGinEngine,

		wire.Struct(new(handler.Forum), "*"),
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil, nil
}
