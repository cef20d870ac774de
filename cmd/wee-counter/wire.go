//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/wee-counter/counter"
	"github.com/weegigs/wee-counter/support"
)

func live(ctx context.Context, config support.Config, fatal Fatal) (*Application, func(), error) {
	panic(wire.Build(
		support.Live,
		storeOptions,
		counter.Live,
		newMCPServer,
		newApplication,
	))
}
