package net

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenxianovo/trading-simulator/internal/book"
	"github.com/shenxianovo/trading-simulator/internal/common"
	"github.com/shenxianovo/trading-simulator/internal/engine"
	"github.com/shenxianovo/trading-simulator/internal/exchange"
	"github.com/shenxianovo/trading-simulator/internal/risk"
	"github.com/shenxianovo/trading-simulator/internal/validate"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	b := book.New()
	e := engine.New(b, engine.NewPriceOracle("MID_PRICE"))
	svc := exchange.New(
		validate.NewOrderValidator(),
		risk.NewSelfTradeChecker(true, time.Minute),
		e,
		b,
	)
	ts := httptest.NewServer(New("127.0.0.1", 0, svc).router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func orderBody(id, owner, side string, price float64, qty uint64) map[string]any {
	return map[string]any{
		"clOrderId":     id,
		"shareholderId": owner,
		"market":        "XSHG",
		"securityId":    "600030",
		"side":          side,
		"qty":           qty,
		"price":         price,
	}
}

func TestHandleSubmit_RestingOrder(t *testing.T) {
	ts := newTestServer(t)

	var order common.Order
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/trading/order", orderBody("BUY001", "SH-A", "B", 10.00, 100), &order)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, common.StatusMatching, order.Status)
	assert.Equal(t, uint64(100), order.Qty)
}

func TestHandleSubmit_RejectSameShape(t *testing.T) {
	ts := newTestServer(t)

	var reject exchange.Reject
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/trading/order", orderBody("BUY001", "SH-A", "X", 10.00, 100), &reject)

	// Rejections are reports, not transport failures.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, common.ErrSideInvalid.Code, reject.RejectCode)
	assert.Equal(t, "BUY001", reject.ClOrderID)
}

func TestHandleSubmit_MalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/trading/order", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCancelAndDepth(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/trading/order", orderBody("SELL001", "SH-A", "S", 10.50, 200), nil)

	var depth DepthResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/trading/book/600030", nil, &depth)
	require.Len(t, depth.Asks, 1)
	assert.Equal(t, LevelView{Price: 10.50, Qty: 200, Orders: 1}, depth.Asks[0])

	var cancel CancelResponse
	doJSON(t, http.MethodDelete, ts.URL+"/api/trading/order", CancelRequest{
		ClOrderID:     "SELL001",
		ShareholderID: "SH-A",
		SecurityID:    "600030",
		Side:          "S",
		Price:         10.50,
	}, &cancel)
	assert.True(t, cancel.Cancelled)

	doJSON(t, http.MethodGet, ts.URL+"/api/trading/book/600030", nil, &depth)
	assert.Empty(t, depth.Asks)
}

func TestHandleReset(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/trading/order", orderBody("BUY001", "SH-A", "B", 10.00, 100), nil)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/trading/book/600030/reset", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var depth DepthResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/trading/book/600030", nil, &depth)
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)
}
