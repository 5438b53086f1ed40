package fugle

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderRejected = errors.New("order rejected")

type placeOrderRequest struct {
	Account       string          `json:"account"`
	ClientOrderID string          `json:"client_order_id"`
	StockID       string          `json:"stock_id"`
	Side          Side            `json:"side"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	OddLot        bool            `json:"odd_lot"`
}

type placeOrderResponse struct {
	OrderID string `json:"order_id"`
}

func (a *Account) PlaceOrder(ctx context.Context, request PlaceOrderRequest) (OrderID, error) {
	if a.client == nil {
		return "", errors.New("account is not logged in")
	}
	if request.Quantity <= 0 {
		return "", fmt.Errorf("invalid quantity %d", request.Quantity)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+a.token)

	var resp placeOrderResponse
	err := a.client.doJSON(ctx, http.MethodPost, a.entry+"/orders", header, placeOrderRequest{
		Account:       a.id.S(),
		ClientOrderID: uuid.NewString(),
		StockID:       request.StockID.S(),
		Side:          request.Side,
		Quantity:      request.Quantity,
		Price:         request.Price,
		OddLot:        request.OddLot,
	}, &resp)
	if err != nil {
		if isStatus(err, http.StatusUnprocessableEntity) {
			return "", ErrOrderRejected
		}
		return "", fmt.Errorf("place order call: %w", err)
	}
	return OrderID(resp.OrderID), nil
}
