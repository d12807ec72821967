package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewPageService,
	wire.Bind(new(IPageService), new(*PageService)),
)
