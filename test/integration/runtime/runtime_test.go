// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package runtime_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/deckkit/pkg/streamdeck"
	"github.com/holomush/deckkit/plugins/hello/src/actions"
)

var _ = Describe("Plugin runtime against a host", func() {
	var (
		h       *host
		plugin  *streamdeck.Plugin
		rt      *streamdeck.Runtime
		ctx     context.Context
		cancel  context.CancelFunc
		waitErr chan error
	)

	BeforeEach(func() {
		h = newHost()
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)

		counter, err := actions.Counter()
		Expect(err).NotTo(HaveOccurred())
		plugin, err = streamdeck.NewPlugin(streamdeck.PluginConfig{
			ID:          "com.example.hello",
			Name:        "Hello",
			Author:      "Example",
			Version:     "0.1.0",
			Description: "Counts key presses",
		}, counter)
		Expect(err).NotTo(HaveOccurred())

		rt = streamdeck.NewRuntime(plugin, streamdeck.LaunchParams{
			Port:          h.port(),
			UUID:          "session-1",
			RegisterEvent: "registerPlugin",
			Info:          []byte(`{"application":{"version":"6.5"}}`),
		})
		Expect(rt.Start(ctx)).To(Succeed())

		waitErr = make(chan error, 1)
		go func() { waitErr <- rt.Wait() }()

		Eventually(h.connected).Should(BeTrue())
	})

	AfterEach(func() {
		_ = rt.Close()
		Eventually(waitErr).Should(Receive())
		cancel()
		h.close()
	})

	Describe("connecting", func() {
		It("registers first and then asks for the global settings", func() {
			Eventually(h.events).Should(ContainElement("getGlobalSettings"))
			Expect(h.events()[0]).To(Equal("registerPlugin"))
			Expect(h.frame("registerPlugin").Get("uuid").String()).To(Equal("session-1"))
			Expect(rt.Ready()).To(BeTrue())
			Expect(plugin.UUID()).To(Equal("session-1"))
		})
	})

	Describe("pressing the counter key", func() {
		It("stores the next count and shows it as the title", func() {
			Expect(h.send(`{
				"event": "keyDown",
				"action": "com.example.hello.counter",
				"context": "ctx-1",
				"device": "dev-1",
				"payload": {"settings": {"count": 4}, "coordinates": {"column": 0, "row": 0}, "state": 0, "isInMultiAction": false}
			}`)).To(Succeed())

			Eventually(h.events).Should(ContainElement("setTitle"))

			settings := h.frame("setSettings")
			Expect(settings.Get("context").String()).To(Equal("ctx-1"))
			Expect(settings.Get("payload.count").Int()).To(Equal(int64(5)))

			Expect(h.frame("setState").Get("payload.state").Int()).To(Equal(int64(1)))
			Expect(h.frame("setTitle").Get("payload.title").String()).To(Equal("5"))
		})

		It("ignores frames for unknown actions", func() {
			Expect(h.send(`{"event":"keyDown","action":"com.example.hello.nope","context":"ctx-2","payload":{"settings":{}}}`)).To(Succeed())
			Consistently(h.events, 500*time.Millisecond).ShouldNot(ContainElement("setTitle"))
			Expect(rt.Ready()).To(BeTrue())
		})
	})

	Describe("the host closing the channel", func() {
		It("ends the runtime without an error", func() {
			Expect(h.hangUp()).To(Succeed())
			var err error
			Eventually(waitErr).Should(Receive(&err))
			Expect(err).NotTo(HaveOccurred())
			Expect(rt.State()).To(Equal(streamdeck.StateClosed))
			// AfterEach waits on the channel again.
			waitErr <- nil
		})
	})
})
