package dashboard

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{} // use default options

// Message is the websocket envelope pushed to dashboard pages when a
// dataset refresh lands. The page re-fetches the affected panel.
type Message struct {
	MessageType string `json:"type"`
	Resource    string `json:"resource,omitempty"`
}

func (app *App) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer c.Close()
	mt, message, err := c.ReadMessage()
	if err != nil {
		log.Println("read:", err)
		return
	}
	log.Printf("recv: %s (%d)", message, mt)

	// The request context of an upgraded connection is not cancelled when
	// the client goes away, so a reader goroutine watches for the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	refreshChan := refreshPubSub.Subscribe(refreshTopic)
	defer refreshPubSub.Unsubscribe(refreshTopic, refreshChan)

	for {
		select {
		case resource := <-refreshChan:
			bytes, err := json.Marshal(Message{MessageType: "refresh", Resource: resource})
			if err != nil {
				log.Println("marshal:", err)
				return
			}
			if err := c.WriteMessage(mt, bytes); err != nil {
				log.Println("write:", err)
				return
			}
		case <-done:
			log.Print("websocket closed\n")
			return
		case <-r.Context().Done():
			return
		}
	}
}
