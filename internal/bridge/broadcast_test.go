package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"command-bridge/internal/command"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

var _ = Describe("Hub", func() {
	var (
		ctx      context.Context
		registry *Registry
		hub      *Hub
	)

	BeforeEach(func() {
		ctx = context.Background()
		registry = NewRegistry()
		hub = NewHub(registry, command.New(pkgLog.NewNop()), Config{SendBuffer: 4}, pkgLog.NewNop())
	})

	addClients := func(n int) []*Client {
		clients := make([]*Client, n)
		for i := range clients {
			clients[i] = newClient(hub, nil, "192.0.2.1")
			registry.Add(clients[i])
		}
		return clients
	}

	webhookMessage := func() model.Message {
		return model.NewMessage(model.MessageTypeWebhookReceived, map[string]any{"event": "ping"})
	}

	Describe("Broadcast", func() {
		It("delivers to every open client and reports the closed one", func() {
			clients := addClients(3)
			clients[1].Close()
			// still registered, as when a disconnect races a broadcast
			registry.Add(clients[1])

			report := hub.Broadcast(ctx, webhookMessage())

			Expect(report.Delivered).To(Equal(2))
			Expect(report.Failed).To(HaveLen(1))
			Expect(report.Failed).To(HaveKeyWithValue(clients[1].ID(), MatchError(ErrClientClosed)))
			Expect(registry.Len()).To(Equal(3))

			var got map[string]any
			Expect(json.Unmarshal(<-clients[0].send, &got)).To(Succeed())
			Expect(got["type"]).To(Equal(model.MessageTypeWebhookReceived))
			Expect(got["event"]).To(Equal("ping"))
			Expect(got["timestamp"]).To(BeNumerically(">", 0))
		})

		It("does not block on a client with a full buffer", func() {
			clients := addClients(2)
			for i := 0; i < 4; i++ {
				Expect(clients[0].TrySend([]byte("{}"))).To(Succeed())
			}

			done := make(chan BroadcastReport)
			go func() { done <- hub.Broadcast(ctx, webhookMessage()) }()

			var report BroadcastReport
			Eventually(done).Should(Receive(&report))
			Expect(report.Delivered).To(Equal(1))
			Expect(report.Failed[clients[0].ID()]).To(MatchError(ErrSendBufferFull))
		})

		It("keeps an existing timestamp", func() {
			clients := addClients(1)
			msg := webhookMessage().Stamp(time.Unix(100, 0))

			hub.Broadcast(ctx, msg)

			var got model.Message
			Expect(json.Unmarshal(<-clients[0].send, &got)).To(Succeed())
			Expect(got.Timestamp).To(Equal(100.0))
		})

		It("tolerates clients disconnecting mid-broadcast", func() {
			clients := addClients(50)

			var wg sync.WaitGroup
			for _, c := range clients[:25] {
				wg.Add(1)
				go func(c *Client) {
					defer GinkgoRecover()
					defer wg.Done()
					c.Close()
				}(c)
			}
			for i := 0; i < 20; i++ {
				report := hub.Broadcast(ctx, webhookMessage())
				Expect(report.Delivered + len(report.Failed)).To(BeNumerically("<=", 50))
			}
			wg.Wait()

			Expect(registry.Len()).To(Equal(25))
			for _, c := range clients[25:] {
				_, ok := registry.Get(c.ID())
				Expect(ok).To(BeTrue())
			}
			for _, c := range clients[25:] {
				for len(c.send) > 0 {
					<-c.send
				}
			}
			report := hub.Broadcast(ctx, webhookMessage())
			Expect(report.Delivered).To(Equal(25))
			Expect(report.Failed).To(BeEmpty())
		})

		It("is an empty report with no clients", func() {
			report := hub.Broadcast(ctx, webhookMessage())
			Expect(report.Delivered).To(BeZero())
			Expect(report.Failed).To(BeEmpty())
		})
	})

	Describe("Client", func() {
		It("removes itself from the registry exactly once", func() {
			c := addClients(1)[0]

			c.Close()
			c.Close()

			Expect(registry.Len()).To(BeZero())
			Expect(c.Done()).To(BeClosed())
			Expect(c.TrySend([]byte("{}"))).To(MatchError(ErrClientClosed))
			Expect(c.Send(ctx, []byte("{}"))).To(MatchError(ErrClientClosed))
		})

		It("waits for buffer space until the context ends", func() {
			c := addClients(1)[0]
			for i := 0; i < 4; i++ {
				Expect(c.TrySend([]byte("{}"))).To(Succeed())
			}

			short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			Expect(c.Send(short, []byte("{}"))).To(MatchError(context.DeadlineExceeded))

			<-c.send
			Expect(c.Send(ctx, []byte("{}"))).To(Succeed())
		})
	})

	Describe("Registry", func() {
		It("reports whether a removal happened", func() {
			c := addClients(1)[0]

			Expect(registry.Remove(c.ID())).To(BeTrue())
			Expect(registry.Remove(c.ID())).To(BeFalse())
			_, ok := registry.Get(c.ID())
			Expect(ok).To(BeFalse())
		})

		It("snapshots in id order", func() {
			addClients(5)

			snap := registry.Snapshot()
			Expect(snap).To(HaveLen(5))
			for i := 1; i < len(snap); i++ {
				Expect(snap[i-1].ID() < snap[i].ID()).To(BeTrue())
			}
		})
	})

	Describe("Close", func() {
		It("disconnects every client", func() {
			clients := addClients(3)

			hub.Close()

			Expect(registry.Len()).To(BeZero())
			for _, c := range clients {
				Expect(c.Done()).To(BeClosed())
			}
		})
	})
})
