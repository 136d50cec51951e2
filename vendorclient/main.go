package main

import (
	"flag"
	"log"
	"net/url"

	"github.com/gorilla/websocket"
)

// Terminal client for vendors: connects to the backend's notification socket
// and prints incoming order events. Useful for demos and manual testing.
func main() {
	addr := flag.String("addr", "localhost:8080", "backend address")
	accountID := flag.String("account", "", "vendor account id")
	token := flag.String("token", "", "JWT for the vendor account")
	flag.Parse()

	if *accountID == "" || *token == "" {
		log.Fatal("both -account and -token are required")
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/ws/notifications",
		RawQuery: url.Values{"account_id": {*accountID}, "token": {*token}}.Encode(),
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	log.Printf("Listening for order notifications as %s", *accountID)

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			log.Fatal("Connection closed:", err)
		}
		log.Printf("Notification: %v", msg)
	}
}
