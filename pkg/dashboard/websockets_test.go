package dashboard

import (
	"encoding/json"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"f1statsboard/pkg/datasets"
)

func dialDashboard(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	if err := c.WriteMessage(websocket.TextMessage, []byte("start")); err != nil {
		t.Fatalf("sending start message: %v", err)
	}
	return c
}

func TestWebsocketPushesRefresh(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})
	ts := httptest.NewServer(r)
	defer ts.Close()

	c := dialDashboard(t, ts)
	defer c.Close()

	// The handler subscribes after the start message lands; keep publishing
	// until a refresh comes back.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				refreshPubSub.Publish(refreshTopic, datasets.ResourceDrivers)
			}
		}
	}()

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("reading refresh message: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("decoding refresh message: %v", err)
	}
	if msg.MessageType != "refresh" || msg.Resource != datasets.ResourceDrivers {
		t.Fatalf("message = %+v, want a drivers refresh", msg)
	}
}

func TestWebsocketHandlerExitsOnClientDisconnect(t *testing.T) {
	_, r := newTestApp(t, map[string]string{"/drivers.json": driversFixture})
	ts := httptest.NewServer(r)
	defer ts.Close()

	before := runtime.NumGoroutine()

	c := dialDashboard(t, ts)
	c.Close()

	// Without a refresh in flight the handler must still notice the close
	// and return, instead of parking in its select until the next publish.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("handler goroutines still running %d > %d after client disconnect", runtime.NumGoroutine(), before)
}
