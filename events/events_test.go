package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/streadway/amqp"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func TestMultiPublishesToEverySink(t *testing.T) {
	boom := errors.New("broker down")
	failing := &recorder{err: boom}
	ok := &recorder{}

	err := Multi{failing, nil, ok}.Publish(context.Background(), New(MatchUpdated, "t1", nil))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if len(failing.events) != 1 || len(ok.events) != 1 {
		t.Errorf("deliveries = %d and %d, want 1 each", len(failing.events), len(ok.events))
	}
	if ok.events[0].TournamentID != "t1" || ok.events[0].Type != MatchUpdated {
		t.Errorf("event = %+v", ok.events[0])
	}
}

func TestMultiEmpty(t *testing.T) {
	if err := (Multi{}).Publish(context.Background(), Event{}); err != nil {
		t.Errorf("error = %v, want nil", err)
	}
	if err := (Nop{}).Publish(context.Background(), Event{}); err != nil {
		t.Errorf("Nop error = %v", err)
	}
}

func TestRoutingKey(t *testing.T) {
	tests := map[Type]string{
		ScheduleRegenerated: "tournament.schedule_regenerated",
		MatchUpdated:        "tournament.match_updated",
		PlayoffsSeeded:      "tournament.playoffs_seeded",
	}
	for typ, want := range tests {
		if got := RoutingKey(typ); got != want {
			t.Errorf("RoutingKey(%s) = %q, want %q", typ, got, want)
		}
	}
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	closed        bool
}

func (c *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQPPublisherPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch, exchange: "tournaments", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	e := New(ScheduleRegenerated, "t9", map[string]int{"matches": 6})
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if ch.exchange != "tournaments" || ch.key != "tournament.schedule_regenerated" {
		t.Errorf("published to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.ContentType != "application/json" || ch.msg.DeliveryMode != amqp.Persistent {
		t.Errorf("message = %+v", ch.msg)
	}

	var got Event
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got.TournamentID != "t9" || got.Type != ScheduleRegenerated {
		t.Errorf("body = %+v", got)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if !ch.closed {
		t.Error("channel was not closed")
	}
}

func TestHubDeliversToRoom(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	defer hub.Stop()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, RoomFor(r.URL.Query().Get("t")))
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?t=42"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount(RoomFor("42")) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), New(MatchUpdated, "other", nil)); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if err := hub.Publish(context.Background(), New(MatchUpdated, "42", "m1")); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.TournamentID != "42" || got.Payload != "m1" {
		t.Errorf("event = %+v, want the one for room 42", got)
	}
}

func TestHubLeaveAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomFor("7")}
	if !hub.Join(client) {
		t.Fatal("Join() = false on a running hub")
	}

	hub.Stop()
	<-stopped

	left := make(chan struct{})
	go func() {
		hub.leave(client)
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("leave blocked after Stop")
	}

	if hub.Join(&Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomFor("7")}) {
		t.Error("Join() = true after Stop")
	}
	if !client.IsClosed {
		t.Error("Stop did not close the registered client")
	}
}
