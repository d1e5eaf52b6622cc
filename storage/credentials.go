package storage

import (
	"os"
	"strconv"
)

type credentialsLogger interface {
	Panicf(format string, args ...interface{})
}

// Credentials collects everything the bot needs from the environment:
// broker token and account, the instrument ticker, order book depth,
// telegram token and the journal database DSN. Missing or malformed values
// are configuration errors and fatal at startup.
type Credentials struct {
	investAPIToken      string
	accountID           string
	ticker              string
	orderBookDepth      int
	telegramBotAPIToken string
	databaseDSN         string
	streamURL           string
	gatewayURL          string
	logger              credentialsLogger
}

func NewCredentialsStorage(credentialsLogger credentialsLogger) *Credentials {
	credentials := Credentials{logger: credentialsLogger}

	credentials.investAPIToken = credentials.getKeyFromEnv("INVEST_API_TOKEN")
	credentials.accountID = credentials.getKeyFromEnv("INVEST_ACCOUNT_ID")
	credentials.ticker = credentials.getKeyFromEnv("INVEST_TICKER")
	credentials.telegramBotAPIToken = credentials.getKeyFromEnv("TELEGRAM_BOT_API_TOKEN")
	credentials.databaseDSN = credentials.getKeyFromEnv("DATABASE_DSN")
	credentials.streamURL = "wss://sandbox.invest-gateway.example/stream/v1"
	credentials.gatewayURL = "https://sandbox.invest-gateway.example/api/v1"

	depth, err := strconv.Atoi(credentials.getKeyFromEnv("INVEST_ORDERBOOK_DEPTH"))
	if err != nil {
		credentialsLogger.Panicf("INVEST_ORDERBOOK_DEPTH must be an integer: %v", err)
	}
	credentials.orderBookDepth = depth

	return &credentials
}

func (credentials *Credentials) GetToken() string {
	return credentials.investAPIToken
}

func (credentials *Credentials) GetAccountID() string {
	return credentials.accountID
}

func (credentials *Credentials) GetTicker() string {
	return credentials.ticker
}

func (credentials *Credentials) GetOrderBookDepth() int {
	return credentials.orderBookDepth
}

func (credentials *Credentials) GetTelegramBotAPIToken() string {
	return credentials.telegramBotAPIToken
}

func (credentials *Credentials) GetDatabaseDSN() string {
	return credentials.databaseDSN
}

func (credentials *Credentials) GetStreamURL() string {
	return credentials.streamURL
}

func (credentials *Credentials) GetGatewayURL() string {
	return credentials.gatewayURL
}

func (credentials *Credentials) getKeyFromEnv(keyName string) string {
	key := os.Getenv(keyName)
	if key == "" {
		credentials.logger.Panicf("Please set %s in system environment variables", keyName)
	}
	return key
}
