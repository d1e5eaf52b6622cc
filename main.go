package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/legendiguess/invest-trade-bot/handlers"
	"github.com/legendiguess/invest-trade-bot/services"
	"github.com/legendiguess/invest-trade-bot/storage"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := log.New()
	logger.SetLevel(log.DebugLevel)

	services.RegisterMetrics()

	credentials := storage.NewCredentialsStorage(logger)
	storage := storage.New(credentials, logger)

	gateway := services.NewHTTPGateway(credentials)

	logger.Printf("Get instrument %s", credentials.GetTicker())
	instrument, err := gateway.InstrumentByTicker(ctx, credentials.GetTicker())
	if err != nil {
		logger.Panicf("instrument lookup failed: %v", err)
	}

	subscribersService := services.NewSubscribersService(storage)
	telegramBot := services.NewTelegramBot(subscribersService, credentials, instrument, logger)

	initialPosition, err := services.InitialPosition(ctx, gateway, credentials.GetAccountID(), instrument)
	if err != nil {
		logger.Panicf("positions query failed: %v", err)
	}
	logger.Printf("Initial position: %d lots", initialPosition)
	position := domain.NewPosition(initialPosition)

	ledger := services.NewOrderLedger(logger)
	journal := services.NewFillJournal(storage, instrument)
	engine := services.NewExecutionEngine(gateway, ledger, position, journal, subscribersService, telegramBot, instrument, credentials.GetAccountID(), logger)

	streamClient := services.NewStreamClient(ctx, credentials, logger)
	bookStore := services.NewBookStore()
	marketFeed := services.NewMarketFeed(bookStore, gateway, streamClient, instrument, credentials.GetOrderBookDepth(), logger)

	strategy := services.NewStrategy(engine, marketFeed, ledger, position, logger)
	engine.Subscribe(strategy)
	marketFeed.Subscribe(strategy)

	handlers.NewServer(position, strategy, ledger, marketFeed, logger)

	go engine.Run(ctx)
	go marketFeed.Run(ctx)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	cancel()
	streamClient.CloseConnection()
	logger.Printf("Final exit")
}
