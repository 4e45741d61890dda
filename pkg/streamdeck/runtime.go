// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/oops"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ConnectDelay separates registration from the initial settings requests
// and the didConnectToSocket callback. The host drops requests that arrive
// before it has processed the registration frame.
const ConnectDelay = 300 * time.Millisecond

// closeGrace bounds the close handshake write.
const closeGrace = time.Second

var tracer = otel.Tracer("deckkit/streamdeck")

// RuntimeState is the lifecycle state of a Runtime.
type RuntimeState int32

// Runtime states. Closed is terminal.
const (
	StateDisconnected RuntimeState = iota
	StateAwaitingRegistration
	StateConnected
	StateClosed
)

func (s RuntimeState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateAwaitingRegistration:
		return "awaiting_registration"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.log = l }
}

// WithMetrics records frame and handler metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Runtime) { r.metrics = m }
}

// WithDialer replaces the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(r *Runtime) { r.dialer = d }
}

// Runtime owns the channel between one endpoint and the host. Inbound
// frames are dispatched one at a time on a single goroutine; a slow
// handler delays the next frame. There is no reconnect: once the channel
// closes the runtime is done.
type Runtime struct {
	endpoint Endpoint
	params   LaunchParams
	dialer   *websocket.Dialer
	log      *slog.Logger
	metrics  *Metrics

	state   atomic.Int32
	closing atomic.Bool

	// mu guards lifecycle transitions; writeMu serializes frame writes.
	mu      sync.Mutex
	writeMu sync.Mutex
	conn    *websocket.Conn

	done     chan struct{}
	doneOnce sync.Once
	err      error
}

// NewRuntime creates a runtime for endpoint. Nothing happens until Start.
func NewRuntime(endpoint Endpoint, params LaunchParams, opts ...Option) *Runtime {
	r := &Runtime{
		endpoint: endpoint,
		params:   params,
		dialer:   websocket.DefaultDialer,
		log:      slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state.
func (r *Runtime) State() RuntimeState {
	return RuntimeState(r.state.Load())
}

// Ready reports whether the runtime holds an open, registered channel.
func (r *Runtime) Ready() bool {
	return r.State() == StateConnected
}

// Start dials the host, sends the registration frame and starts
// dispatching. It returns once the channel is registered. Cancelling ctx
// later closes the runtime.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.state.CompareAndSwap(int32(StateDisconnected), int32(StateAwaitingRegistration)) {
		return oops.Code(CodeRuntimeState).
			With("state", r.State().String()).
			Errorf("runtime cannot start from state %s", r.State())
	}
	if err := r.params.Validate(); err != nil {
		r.finishLocked(err)
		return err
	}

	addr := url.URL{Scheme: "ws", Host: net.JoinHostPort("127.0.0.1", strconv.Itoa(r.params.Port))}
	conn, resp, err := r.dialer.DialContext(ctx, addr.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		err = oops.Code(CodeNotConnected).With("addr", addr.String()).Wrap(err)
		r.finishLocked(err)
		return err
	}

	r.writeMu.Lock()
	r.conn = conn
	r.writeMu.Unlock()
	r.endpoint.bind(r, r.params)

	if err := r.send(outbound{Event: r.params.RegisterEvent, UUID: r.params.UUID}); err != nil {
		r.endpoint.unbind()
		_ = conn.Close()
		r.finishLocked(err)
		return err
	}

	r.state.Store(int32(StateConnected))
	r.metrics.setConnected(true)
	r.log.InfoContext(ctx, "registered with host",
		"addr", addr.String(), "register_event", r.params.RegisterEvent)

	go r.run(ctx)
	return nil
}

// Wait blocks until the runtime is closed. It returns nil after Close or a
// normal close from the host, and the read error otherwise. Wait on a
// runtime that was never started blocks until Close is called.
func (r *Runtime) Wait() error {
	<-r.done
	return r.err
}

// Run is Start followed by Wait.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	return r.Wait()
}

// Close sends a close frame and tears the channel down. Dispatch stops
// after the frame being handled, if any. Close is idempotent.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State() {
	case StateClosed:
		return nil
	case StateDisconnected:
		r.finishLocked(nil)
		return nil
	}

	r.closing.Store(true)
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if r.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = r.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
	if err := r.conn.Close(); err != nil {
		return oops.Code(CodeRuntimeState).Wrap(err)
	}
	return nil
}

// send encodes f and writes it as one text message.
func (r *Runtime) send(f outbound) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return oops.Code(CodeInvalidFrame).With("event", f.Event).Wrap(err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if r.conn == nil || r.State() == StateClosed || r.closing.Load() {
		return ErrNotConnected(f.Event)
	}
	if err := r.conn.WriteMessage(websocket.TextMessage, bytes.TrimSuffix(buf.B, []byte("\n"))); err != nil {
		return oops.Code(CodeNotConnected).With("event", f.Event).Wrap(err)
	}
	r.metrics.frame(directionOut, f.Event)
	r.log.Debug("sent frame", "event", f.Event, "context", f.Context)
	return nil
}

// run is the dispatch loop. It owns the connect timer so the delayed
// connect callback never overlaps a frame handler.
func (r *Runtime) run(ctx context.Context) {
	frames := make(chan []byte)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go r.read(frames, readErr, stop)

	timer := time.NewTimer(ConnectDelay)
	defer timer.Stop()

	d := &dispatcher{log: r.log, metrics: r.metrics}
	ctxDone := ctx.Done()
	for {
		select {
		case <-timer.C:
			r.endpoint.connected(ctx, d)
		case data := <-frames:
			r.handle(ctx, d, data)
		case err := <-readErr:
			r.finish(err)
			return
		case <-ctxDone:
			ctxDone = nil
			if err := r.Close(); err != nil {
				r.log.WarnContext(ctx, "close after cancel failed", "error", err)
			}
		}
	}
}

func (r *Runtime) read(frames chan<- []byte, readErr chan<- error, stop <-chan struct{}) {
	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}
		select {
		case frames <- data:
		case <-stop:
			return
		}
	}
}

func (r *Runtime) handle(ctx context.Context, d *dispatcher, data []byte) {
	ctx, span := tracer.Start(ctx, "streamdeck.dispatch")
	defer span.End()

	ev, err := parseFrame(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.metrics.frame(directionIn, "invalid")
		r.log.WarnContext(ctx, "dropping malformed frame", "error", err)
		return
	}

	span.SetAttributes(
		attribute.String("event.name", ev.Name),
		attribute.String("event.action", ev.Action),
		attribute.String("event.context", ev.Context),
	)
	r.metrics.frame(directionIn, ev.Name)
	r.log.DebugContext(ctx, "received frame", "event", ev.Name, "action", ev.Action)
	r.endpoint.dispatch(ctx, d, ev)
}

func (r *Runtime) finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endpoint.unbind()
	r.writeMu.Lock()
	_ = r.conn.Close()
	r.writeMu.Unlock()

	if r.closing.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		err = nil
	} else if err != nil {
		err = oops.Code(CodeNotConnected).Wrap(err)
	}
	r.log.Info("channel closed", "error", err)
	r.finishLocked(err)
}

// finishLocked moves the runtime to Closed and releases Wait.
func (r *Runtime) finishLocked(err error) {
	r.doneOnce.Do(func() {
		r.state.Store(int32(StateClosed))
		r.metrics.setConnected(false)
		r.err = err
		close(r.done)
	})
}
