// Command postop-mcp serves the ward's bed state as MCP tools over stdio.
package main

import (
	"fmt"
	"os"

	"github.com/jwulff/postop/internal/api"
	"github.com/jwulff/postop/internal/config"
	"github.com/jwulff/postop/internal/logging"
	"github.com/jwulff/postop/internal/mcptools"
	"github.com/mark3labs/mcp-go/server"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "postop-mcp: load config:", err)
		os.Exit(1)
	}

	// stdout carries the protocol.
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "postop-mcp:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logging.New(logFile, cfg.Log.Level, "postop-mcp", false)

	client := api.NewClient(cfg.Dashboard.APIURL, cfg.Dashboard.RequestTimeout)
	s := mcptools.NewServer(mcptools.New(client, log), version)

	log.Info().Str("api_url", cfg.Dashboard.APIURL).Msg("mcp server starting")
	if err := server.ServeStdio(s); err != nil {
		log.Error().Err(err).Msg("mcp server stopped")
		fmt.Fprintln(os.Stderr, "postop-mcp:", err)
		os.Exit(1)
	}
}
