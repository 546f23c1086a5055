package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Small CLI for poking the exchange during development: place or cancel
// orders and dump book depth.
func main() {
	serverURL := flag.String("server", "http://127.0.0.1:8080", "Base URL of the exchange server")
	action := flag.String("action", "place", "Action to perform: ['place', 'cancel', 'depth']")

	shareholder := flag.String("shareholder", "", "Shareholder id (compulsory for place/cancel)")
	market := flag.String("market", "XSHG", "Market code (XSHG/XSHE/BJSE)")
	security := flag.String("security", "600030", "Security identifier")
	side := flag.String("side", "B", "Order side: 'B' or 'S'")
	price := flag.Float64("price", 10.0, "Limit price")
	qtyStr := flag.String("qty", "100", "Quantity or comma-separated list (e.g. 100,200,50)")
	clOrderID := flag.String("id", "", "Client order id (generated if empty; required for cancel)")

	flag.Parse()

	switch *action {
	case "place":
		requireOwner(*shareholder)
		for _, q := range strings.Split(*qtyStr, ",") {
			qty, err := strconv.ParseUint(strings.TrimSpace(q), 10, 64)
			if err != nil {
				log.Fatalf("bad quantity %q: %v", q, err)
			}
			id := *clOrderID
			if id == "" {
				id = uuid.NewString()
			}
			body := map[string]any{
				"clOrderId":     id,
				"shareholderId": *shareholder,
				"market":        *market,
				"securityId":    *security,
				"side":          *side,
				"qty":           qty,
				"price":         *price,
			}
			send(http.MethodPost, *serverURL+"/api/trading/order", body)
		}
	case "cancel":
		requireOwner(*shareholder)
		if *clOrderID == "" {
			log.Fatal("-id is required for cancel")
		}
		body := map[string]any{
			"clOrderId":     *clOrderID,
			"shareholderId": *shareholder,
			"securityId":    *security,
			"side":          *side,
			"price":         *price,
		}
		send(http.MethodDelete, *serverURL+"/api/trading/order", body)
	case "depth":
		resp, err := http.Get(*serverURL + "/api/trading/book/" + *security)
		if err != nil {
			log.Fatalf("request failed: %v", err)
		}
		dump(resp)
	default:
		fmt.Printf("unknown action %q\n", *action)
		flag.Usage()
		os.Exit(1)
	}
}

func requireOwner(shareholder string) {
	if shareholder == "" {
		fmt.Println("Error: -shareholder is compulsory.")
		flag.Usage()
		os.Exit(1)
	}
}

func send(method, url string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("unable to encode request: %v", err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("unable to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	dump(resp)
}

func dump(resp *http.Response) {
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("unable to read response: %v", err)
	}
	fmt.Printf("%s %s\n", resp.Status, strings.TrimSpace(string(out)))
}
