// Standalone HTTP MCP server for symroot.
//
// Exposes symroot tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Websocket:          GET  /ws
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/njchilds90/symroot"
	"github.com/njchilds90/symroot/internal/server"
)

func main() {
	port := pflag.Int("port", 8080, "port to listen on")
	debug := pflag.Bool("debug", false, "log every tool call")
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Addr:   fmt.Sprintf(":%d", *port),
		Config: symroot.DefaultConfig(),
	}, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}
