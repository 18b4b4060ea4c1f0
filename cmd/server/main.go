package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/quantpilot/backtest/internal/api"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/rs/cors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func serveAction(_ context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	server := api.NewServer(appLogger)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(server.Handler())

	addr := fmt.Sprintf(":%d", cmd.Int("port"))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	appLogger.Info("starting backtest API server", zap.String("addr", addr))

	return httpServer.ListenAndServe()
}

func main() {
	cmd := &cli.Command{
		Name:  "server",
		Usage: "Serve the backtest engine over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				Value:   8080,
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
