package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/legendiguess/invest-trade-bot/domain"
	"nhooyr.io/websocket"
)

type streamCredentials interface {
	GetToken() string
	GetStreamURL() string
}

type streamClientLogger interface {
	Panicf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Printf(format string, args ...interface{})
}

// StreamClient is the subscription half of the brokerage service: a single
// websocket connection carrying order book snapshots.
type StreamClient struct {
	connection *websocket.Conn
	logger     streamClientLogger
}

// Create connected stream client
func NewStreamClient(ctx context.Context, streamCredentials streamCredentials, streamClientLogger streamClientLogger) *StreamClient {
	streamClient := StreamClient{logger: streamClientLogger}

	headers := http.Header{}
	headers.Add("Authorization", "Bearer "+streamCredentials.GetToken())

	var err error
	for {
		streamClient.connection, _, err = websocket.Dial(ctx, streamCredentials.GetStreamURL(), &websocket.DialOptions{HTTPHeader: headers})
		if err != nil {
			time.Sleep(1 * time.Second)
			streamClient.logger.Debugf("Attempting to establish a websocket connection...")
			continue
		}
		break
	}
	streamClient.logger.Debugf("Websocket connection established")

	// Ping every 30 sec
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Second * 30)
				streamClient.connection.Ping(ctx)
			}
		}
	}()

	return &streamClient
}

type streamMessage struct {
	OrderBook *domain.OrderBookSnapshot `json:"orderbook"`
}

// SubscribeOrderBook requests snapshots for the instrument and returns the
// channel they arrive on. The channel closes when the connection dies or the
// context is cancelled.
func (streamClient *StreamClient) SubscribeOrderBook(ctx context.Context, figi string, depth int) (<-chan domain.OrderBookSnapshot, error) {
	subscribeBytes, err := json.Marshal(map[string]interface{}{
		"event": "subscribe",
		"feed":  "orderbook",
		"figi":  figi,
		"depth": depth,
	})
	if err != nil {
		return nil, err
	}

	if err := streamClient.connection.Write(ctx, websocket.MessageText, subscribeBytes); err != nil {
		return nil, err
	}
	streamClient.logger.Printf("Subscribed to %s order book, depth %d", figi, depth)

	snapshots := make(chan domain.OrderBookSnapshot)

	go func() {
		defer close(snapshots)

		for {
			select {
			case <-ctx.Done():
				return
			default:
				_, messageBytes, err := streamClient.connection.Read(ctx)
				if err != nil {
					return
				}

				var message streamMessage
				if err := json.Unmarshal(messageBytes, &message); err != nil {
					continue
				}

				// service messages carry no order book
				if message.OrderBook != nil {
					snapshots <- *message.OrderBook
				}
			}
		}
	}()

	return snapshots, nil
}

func (streamClient *StreamClient) CloseConnection() {
	streamClient.connection.Close(websocket.StatusNormalClosure, "")
}
