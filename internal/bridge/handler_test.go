package bridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"command-bridge/internal/analysis"
	"command-bridge/internal/command"
	"command-bridge/internal/command/handlers"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

var _ = Describe("HandleConnection", func() {
	var (
		registry *Registry
		hub      *Hub
		server   *httptest.Server
		wsURL    string
	)

	start := func(cfg Config) {
		registry = NewRegistry()
		tracker := analysis.NewTracker(time.Now())

		d := command.New(pkgLog.NewNop(), handlers.NewQuickTestHandler(pkgLog.NewNop()))
		d.Register(handlers.NewStatusHandler(tracker, registry, d.Names, "test", pkgLog.NewNop()))

		hub = NewHub(registry, d, cfg, pkgLog.NewNop())

		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.GET("/ws", hub.HandleConnection)
		server = httptest.NewServer(engine)
		wsURL = "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	}

	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		Expect(err).NotTo(HaveOccurred())
		return conn
	}

	read := func(conn *websocket.Conn) map[string]any {
		Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
		var m map[string]any
		Expect(conn.ReadJSON(&m)).To(Succeed())
		return m
	}

	BeforeEach(func() {
		start(Config{})
	})

	AfterEach(func() {
		hub.Close()
		server.Close()
	})

	It("greets a new client with the system status", func() {
		conn := dial()
		defer conn.Close()

		m := read(conn)
		Expect(m["type"]).To(Equal(model.MessageTypeStatus))
		Expect(m["connected_clients"]).To(Equal(1.0))
		Expect(m["timestamp"]).To(BeNumerically(">", 0))
	})

	It("answers invalid JSON and keeps the connection open", func() {
		conn := dial()
		defer conn.Close()
		read(conn)

		Expect(conn.WriteMessage(websocket.TextMessage, []byte("{not json"))).To(Succeed())
		m := read(conn)
		Expect(m["type"]).To(Equal(model.MessageTypeError))
		Expect(m["message"]).To(Equal(command.MsgInvalidJSON))

		Expect(conn.WriteJSON(map[string]any{"command": "quick_test", "size": 5})).To(Succeed())
		m = read(conn)
		Expect(m["type"]).To(Equal(handlers.TypeQuickTestComplete))
		Expect(m["prs_processed"]).To(Equal(5.0))
	})

	It("reports unknown commands", func() {
		conn := dial()
		defer conn.Close()
		read(conn)

		Expect(conn.WriteJSON(map[string]any{"command": "frobnicate"})).To(Succeed())
		m := read(conn)
		Expect(m["type"]).To(Equal(model.MessageTypeError))
		Expect(m["message"]).To(Equal("Unknown command: frobnicate"))
	})

	It("replies in request order", func() {
		conn := dial()
		defer conn.Close()
		read(conn)

		for _, size := range []int{1, 2, 3} {
			Expect(conn.WriteJSON(map[string]any{"command": "quick_test", "size": size})).To(Succeed())
		}
		for _, size := range []float64{1, 2, 3} {
			Expect(read(conn)["prs_processed"]).To(Equal(size))
		}
	})

	It("delivers broadcasts to connected clients", func() {
		first, second := dial(), dial()
		defer first.Close()
		defer second.Close()
		read(first)
		read(second)
		Eventually(registry.Len).Should(Equal(2))

		report := hub.Broadcast(context.Background(), model.NewMessage(model.MessageTypeWebhookReceived, map[string]any{"event": "push"}))
		Expect(report.Delivered).To(Equal(2))

		for _, conn := range []*websocket.Conn{first, second} {
			m := read(conn)
			Expect(m["type"]).To(Equal(model.MessageTypeWebhookReceived))
			Expect(m["event"]).To(Equal("push"))
		}
	})

	It("unregisters a client that disconnects", func() {
		conn := dial()
		read(conn)
		Eventually(registry.Len).Should(Equal(1))

		Expect(conn.Close()).To(Succeed())
		Eventually(registry.Len).Should(BeZero())
	})

	It("closes connections when the hub closes", func() {
		conn := dial()
		defer conn.Close()
		read(conn)

		hub.Close()

		Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
		_, _, err := conn.ReadMessage()
		Expect(err).To(HaveOccurred())

		resp, err := http.Get(server.URL + "/ws")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))
	})

	It("leaves no client registered when a handshake races Close", func() {
		hub.Close()
		server.Close()

		for i := 0; i < 50; i++ {
			start(Config{})

			dialed := make(chan *websocket.Conn, 1)
			go func() {
				defer GinkgoRecover()
				conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
				if err != nil {
					conn = nil
				}
				dialed <- conn
			}()
			time.Sleep(time.Duration(i*10) * time.Microsecond)
			hub.Close()

			var conn *websocket.Conn
			Eventually(dialed, 5*time.Second).Should(Receive(&conn))
			// the dialer keeps its end open, so only the hub can unregister it
			Eventually(registry.Len).Should(BeZero())
			if conn != nil {
				conn.Close()
			}
			server.Close()
		}
	})

	Context("with an origin allow-list", func() {
		BeforeEach(func() {
			hub.Close()
			server.Close()
			start(Config{AllowedOrigins: []string{"http://localhost:3000"}})
		})

		It("rejects other browser origins", func() {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}})
			Expect(err).To(MatchError(websocket.ErrBadHandshake))
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
		})

		It("accepts a listed origin", func() {
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://localhost:3000"}})
			Expect(err).NotTo(HaveOccurred())
			defer conn.Close()
			Expect(read(conn)["type"]).To(Equal(model.MessageTypeStatus))
		})
	})
})
