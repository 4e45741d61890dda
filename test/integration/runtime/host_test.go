// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package runtime_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

// host is a loopback stand-in for the Stream Deck application. It accepts
// one plugin connection at a time and records every frame it receives.
type host struct {
	server *httptest.Server

	mu     sync.Mutex
	conn   *websocket.Conn
	frames []string
}

func newHost() *host {
	h := &host{}
	upgrader := websocket.Upgrader{}
	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.mu.Lock()
		h.conn = conn
		h.mu.Unlock()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.mu.Lock()
			h.frames = append(h.frames, string(data))
			h.mu.Unlock()
		}
	}))
	return h
}

func (h *host) port() int {
	u, err := url.Parse(h.server.URL)
	if err != nil {
		panic(err)
	}
	p, err := strconv.Atoi(u.Port())
	if err != nil {
		panic(err)
	}
	return p
}

// events returns the event names of the received frames, in order.
func (h *host) events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.frames))
	for i, f := range h.frames {
		out[i] = gjson.Get(f, "event").String()
	}
	return out
}

// frame returns the last received frame for event.
func (h *host) frame(event string) gjson.Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.frames) - 1; i >= 0; i-- {
		if r := gjson.Parse(h.frames[i]); r.Get("event").String() == event {
			return r
		}
	}
	return gjson.Result{}
}

func (h *host) connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn != nil
}

func (h *host) send(frame string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

// hangUp closes the connection with a normal close frame.
func (h *host) hangUp() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return h.conn.WriteMessage(websocket.CloseMessage, msg)
}

func (h *host) close() {
	h.mu.Lock()
	if h.conn != nil {
		_ = h.conn.Close()
	}
	h.mu.Unlock()
	h.server.Close()
}
