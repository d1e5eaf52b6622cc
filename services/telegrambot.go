package services

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/legendiguess/invest-trade-bot/domain"
)

type subscribersService interface {
	CheckAddSubscriber(subscriber *domain.Subscriber)
}

type telegramBotCredentials interface {
	GetTelegramBotAPIToken() string
}

type telegramBotLogger interface {
	Panic(args ...interface{})
}

// TelegramBot subscribes chats on /start and reports every fill to them.
type TelegramBot struct {
	bot         *tgbotapi.BotAPI
	subscribers subscribersService
	instrument  domain.Instrument
	logger      telegramBotLogger
}

func NewTelegramBot(subscribers subscribersService, telegramBotCredentials telegramBotCredentials, instrument domain.Instrument, telegramBotLogger telegramBotLogger) *TelegramBot {
	telegramBot := TelegramBot{subscribers: subscribers, instrument: instrument, logger: telegramBotLogger}

	var err error
	telegramBot.bot, err = tgbotapi.NewBotAPI(telegramBotCredentials.GetTelegramBotAPIToken())
	if err != nil {
		telegramBot.logger.Panic(err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 10

	updates := telegramBot.bot.GetUpdatesChan(u)

	go func() {
		for update := range updates {
			if update.Message == nil {
				continue
			}

			if update.Message.Text == "/start" {
				telegramBot.subscribers.CheckAddSubscriber(&domain.Subscriber{ChatID: update.Message.Chat.ID})
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "You are subscribed to fill reports 👍")
				telegramBot.bot.Send(msg)
			}
		}
	}()

	return &telegramBot
}

func (telegramBot *TelegramBot) SendFillReport(chatID int64, order *domain.Order) {
	verb := "Bought ➕"
	if order.Side == domain.SideSell {
		verb = "Sold ➖"
	}

	text := fmt.Sprintf("%s %d lot %s at %s 💵\n%s ⏱", verb, order.Qty, strings.ToUpper(telegramBot.instrument.Ticker), order.Px, time.Now().Format(time.RFC1123))

	msg := tgbotapi.NewMessage(chatID, text)
	telegramBot.bot.Send(msg)
}
