package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/lepinkainen/unroll/internal/server"
)

// ServeCmd runs the JSON API until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to server.addr from config)"`
}

var startServer = func(ctx context.Context, srv *server.Server) error {
	return srv.Start(ctx)
}

func (c *ServeCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = viper.GetString("server.addr")
	}

	ctx, stop := signal.NotifyContext(commandContext(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting catalog API", "addr", addr, "locale", client.Locale())
	err = startServer(ctx, server.New(addr, client, slog.Default()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
