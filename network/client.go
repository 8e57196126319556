package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"

	"github.com/jappenzeller/system-client-go/shared/messages"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedWorld
	StateError
)

// Client manages a WebSocket connection to the world server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state         ClientState
	lastError     error
	networkID     esync.NetworkId
	serverName    string
	tickRate      int
	worldName     string
	surfaceRadius float64
	conn          *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	extractionCh   chan messages.ExtractionGrantedEvent
	transferCh     chan messages.TransferInitiatedEvent
	distributionCh chan messages.DistributionEvent
}

func NewClient() *Client {
	return &Client{
		state:          StateDisconnected,
		snapshotCh:     make(chan esync.WorldSnapshot, 1),
		extractionCh:   make(chan messages.ExtractionGrantedEvent, 8),
		transferCh:     make(chan messages.TransferInitiatedEvent, 8),
		distributionCh: make(chan messages.DistributionEvent, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				c.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s world=%s radius=%.1f tickRate=%d",
			msg.NetworkID, msg.ServerName, msg.WorldName, msg.SurfaceRadius, msg.TickRate)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.worldName = msg.WorldName
		c.surfaceRadius = msg.SurfaceRadius
		c.state = StateJoinedWorld
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.ExtractionGrantedEvent) {
		select {
		case c.extractionCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.TransferInitiatedEvent) {
		select {
		case c.transferCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.DistributionEvent) {
		select {
		case c.distributionCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) WorldName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.worldName
}

// SurfaceRadius returns the world radius announced in the join handshake, or
// zero before joining.
func (c *Client) SurfaceRadius() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surfaceRadius
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// NextExtraction returns a pending extraction grant, or false. Non-blocking.
func (c *Client) NextExtraction() (messages.ExtractionGrantedEvent, bool) {
	select {
	case evt := <-c.extractionCh:
		return evt, true
	default:
		return messages.ExtractionGrantedEvent{}, false
	}
}

// NextTransfer returns a pending transfer event, or false. Non-blocking.
func (c *Client) NextTransfer() (messages.TransferInitiatedEvent, bool) {
	select {
	case evt := <-c.transferCh:
		return evt, true
	default:
		return messages.TransferInitiatedEvent{}, false
	}
}

// NextDistribution returns a pending distribution event, or false. Non-blocking.
func (c *Client) NextDistribution() (messages.DistributionEvent, bool) {
	select {
	case evt := <-c.distributionCh:
		return evt, true
	default:
		return messages.DistributionEvent{}, false
	}
}

// SendMessage serializes and writes a message on the open connection.
func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
