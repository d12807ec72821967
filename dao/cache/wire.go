package cache

import (
	"Arena/pkg/client"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewPageCache,
	wire.Bind(new(HandleProvider), new(*client.RedisManager)),
)
