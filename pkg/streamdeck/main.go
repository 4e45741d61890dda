// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/samber/oops"

	"github.com/holomush/deckkit/internal/logging"
	"github.com/holomush/deckkit/internal/observability"
	"github.com/holomush/deckkit/pkg/errutil"
)

// MetricsAddrEnv names the variable that enables the metrics and health
// endpoint of a running plugin, e.g. DECKKIT_METRICS_ADDR=127.0.0.1:9464.
const MetricsAddrEnv = "DECKKIT_METRICS_ADDR"

// Main is the entry point of a plugin binary:
//
//	func main() { streamdeck.Main(plugin) }
//
// It never returns.
func Main(p *Plugin, opts ...Option) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Run(ctx, p, os.Args[1:], os.Stdout, opts...)
	stop()
	if err != nil {
		errutil.LogError(logging.Setup(p.BaseID(), p.Version(), "json", nil), "plugin failed", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// Run handles one invocation of a plugin binary. With DescribeCommand it
// writes the description to stdout. Otherwise it parses the launch
// arguments and serves the host until the channel closes.
func Run(ctx context.Context, p *Plugin, args []string, stdout io.Writer, opts ...Option) error {
	if len(args) > 0 && args[0] == DescribeCommand {
		data, err := p.MarshalDescription()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(stdout, string(data)); err != nil {
			return oops.Code(CodeInvalidDescription).Wrap(err)
		}
		return nil
	}

	params, err := ParseLaunchArgs(args)
	if err != nil {
		return err
	}

	logger := logging.Setup(p.BaseID(), p.Version(), "json", nil)
	all := append([]Option{WithLogger(logger)}, opts...)

	var current atomic.Pointer[Runtime]
	if addr := os.Getenv(MetricsAddrEnv); addr != "" {
		srv := observability.NewServer(addr, func() (bool, string) {
			rt := current.Load()
			if rt == nil {
				return false, StateDisconnected.String()
			}
			return rt.Ready(), rt.State().String()
		}, logger)
		all = append(all, WithMetrics(NewMetrics(srv.Registry())))
		errCh, err := srv.Start()
		if err != nil {
			return err
		}
		defer func() {
			if err := srv.Stop(context.Background()); err != nil {
				errutil.LogError(logger, "metrics server shutdown failed", err)
			}
		}()
		go func() {
			for err := range errCh {
				errutil.LogError(logger, "metrics server failed", err)
			}
		}()
	}

	rt := NewRuntime(p, params, all...)
	current.Store(rt)
	return rt.Run(ctx)
}
