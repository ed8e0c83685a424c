package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/seitarof/gen-hints/internal/cli"
	"github.com/seitarof/gen-hints/internal/generator"
	"github.com/seitarof/gen-hints/internal/logging"
	"github.com/seitarof/gen-hints/internal/parser"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []parser.Option{parser.WithLogger(logger)}
	if cfg.AllowErrors {
		opts = append(opts, parser.WithAllowErrors())
	}
	p := parser.New(opts...)
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(p, g, logger, os.Stderr)
	if err := runner.Run(ctx, cfg); err != nil {
		logger.Error("gen-hints failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
