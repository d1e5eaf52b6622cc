package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/shopspring/decimal"
)

type gatewayCredentials interface {
	GetToken() string
	GetGatewayURL() string
}

// HTTPGateway is the request half of the brokerage service: order posting,
// cancellation, status and position queries over authenticated JSON calls.
type HTTPGateway struct {
	credentials gatewayCredentials
}

func NewHTTPGateway(gatewayCredentials gatewayCredentials) *HTTPGateway {
	return &HTTPGateway{credentials: gatewayCredentials}
}

type postOrderBody struct {
	Figi      string           `json:"figi"`
	Quantity  int64            `json:"quantity"`
	Price     domain.Quotation `json:"price"`
	Direction string           `json:"direction"`
	AccountID string           `json:"account_id"`
	OrderType string           `json:"order_type"`
}

type postOrderAnswer struct {
	OrderID              string           `json:"order_id"`
	Direction            string           `json:"direction"`
	LotsRequested        int64            `json:"lots_requested"`
	LotsExecuted         int64            `json:"lots_executed"`
	InitialSecurityPrice domain.Quotation `json:"initial_security_price"`
}

func (gateway *HTTPGateway) PostOrder(ctx context.Context, figi string, qty int64, px decimal.Decimal, side domain.Side, accountID string) (domain.PostOrderResponse, error) {
	price, err := domain.DecimalToQuotation(px)
	if err != nil {
		return domain.PostOrderResponse{}, err
	}

	var answer postOrderAnswer
	err = gateway.sendRequest(ctx, "/orders", postOrderBody{
		Figi:      figi,
		Quantity:  qty,
		Price:     price,
		Direction: side.String(),
		AccountID: accountID,
		OrderType: "limit",
	}, &answer)
	if err != nil {
		return domain.PostOrderResponse{}, err
	}

	direction, err := domain.ParseSide(answer.Direction)
	if err != nil {
		return domain.PostOrderResponse{}, err
	}

	return domain.PostOrderResponse{
		BrokerID:      answer.OrderID,
		Direction:     direction,
		LotsRequested: answer.LotsRequested,
		LotsExecuted:  answer.LotsExecuted,
		InitialPrice:  answer.InitialSecurityPrice,
	}, nil
}

func (gateway *HTTPGateway) CancelOrder(ctx context.Context, accountID string, brokerID string) error {
	body := struct {
		AccountID string `json:"account_id"`
		OrderID   string `json:"order_id"`
	}{AccountID: accountID, OrderID: brokerID}

	var answer struct {
		Time string `json:"time"`
	}
	return gateway.sendRequest(ctx, "/orders/cancel", body, &answer)
}

func (gateway *HTTPGateway) GetOrderState(ctx context.Context, accountID string, brokerID string) (domain.OrderState, error) {
	body := struct {
		AccountID string `json:"account_id"`
		OrderID   string `json:"order_id"`
	}{AccountID: accountID, OrderID: brokerID}

	var answer struct {
		OrderID      string `json:"order_id"`
		Direction    string `json:"direction"`
		LotsExecuted int64  `json:"lots_executed"`
	}
	if err := gateway.sendRequest(ctx, "/orders/state", body, &answer); err != nil {
		return domain.OrderState{}, err
	}

	direction, err := domain.ParseSide(answer.Direction)
	if err != nil {
		return domain.OrderState{}, err
	}

	return domain.OrderState{
		BrokerID:     answer.OrderID,
		Direction:    direction,
		LotsExecuted: answer.LotsExecuted,
	}, nil
}

func (gateway *HTTPGateway) GetPositions(ctx context.Context, accountID string) (domain.PositionsResponse, error) {
	body := struct {
		AccountID string `json:"account_id"`
	}{AccountID: accountID}

	var answer domain.PositionsResponse
	err := gateway.sendRequest(ctx, "/positions", body, &answer)
	return answer, err
}

func (gateway *HTTPGateway) GetOrderBook(ctx context.Context, figi string, depth int) (domain.OrderBookSnapshot, error) {
	body := struct {
		Figi  string `json:"figi"`
		Depth int    `json:"depth"`
	}{Figi: figi, Depth: depth}

	var answer domain.OrderBookSnapshot
	err := gateway.sendRequest(ctx, "/market-data/order-book", body, &answer)
	return answer, err
}

func (gateway *HTTPGateway) InstrumentByTicker(ctx context.Context, ticker string) (domain.Instrument, error) {
	body := struct {
		Ticker string `json:"ticker"`
	}{Ticker: ticker}

	var answer struct {
		Figi              string           `json:"figi"`
		Ticker            string           `json:"ticker"`
		Lot               int64            `json:"lot"`
		MinPriceIncrement domain.Quotation `json:"min_price_increment"`
	}
	if err := gateway.sendRequest(ctx, "/instruments/share-by-ticker", body, &answer); err != nil {
		return domain.Instrument{}, err
	}

	return domain.Instrument{
		Figi:              answer.Figi,
		Ticker:            answer.Ticker,
		Lot:               answer.Lot,
		MinPriceIncrement: domain.QuotationToDecimal(answer.MinPriceIncrement),
	}, nil
}

func (gateway *HTTPGateway) sendRequest(ctx context.Context, endPoint string, body interface{}, answer interface{}) error {
	requestBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}

	newRequest, err := http.NewRequestWithContext(ctx, "POST", gateway.credentials.GetGatewayURL()+endPoint, bytes.NewReader(requestBytes))
	if err != nil {
		return err
	}
	newRequest.Header.Add("Authorization", "Bearer "+gateway.credentials.GetToken())
	newRequest.Header.Add("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(newRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	answerBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s answered %d: %s", endPoint, resp.StatusCode, answerBytes)
	}

	return json.Unmarshal(answerBytes, answer)
}
