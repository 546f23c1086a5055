package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shenxianovo/trading-simulator/internal/book"
	"github.com/shenxianovo/trading-simulator/internal/config"
	"github.com/shenxianovo/trading-simulator/internal/engine"
	"github.com/shenxianovo/trading-simulator/internal/exchange"
	"github.com/shenxianovo/trading-simulator/internal/net"
	"github.com/shenxianovo/trading-simulator/internal/risk"
	"github.com/shenxianovo/trading-simulator/internal/validate"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Wire the exchange: book and oracle feed the engine, the service
	// orchestrates validation, risk and matching in front of it.
	orderBook := book.New()
	oracle := engine.NewPriceOracle(cfg.Matching.PriceStrategy)
	matcher := engine.New(orderBook, oracle)
	checker := risk.NewSelfTradeChecker(cfg.SelfTrade.Enable, cfg.SelfTrade.TimeWindow)
	svc := exchange.New(validate.NewOrderValidator(), checker, matcher, orderBook)

	srv := net.New(cfg.Server.Address, cfg.Server.Port, svc)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
