// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coldspire/cqlwire/errs"
	"github.com/coldspire/cqlwire/frame"
	"github.com/coldspire/cqlwire/message"
	"github.com/coldspire/cqlwire/primitive"
)

const (
	DefaultHost             = "127.0.0.1"
	DefaultPort             = 9042
	DefaultStartupTimeout   = time.Second * 10
	DefaultRequestTimeout   = time.Second * 10
	DefaultMaxInFlight      = math.MaxInt16
	DefaultPreferredCompression = primitive.CompressionLz4
)

// ManagedStreamId asks the connection to pick a free stream id automatically when sending a request.
const ManagedStreamId int16 = 0

// EventHandler is a callback invoked whenever a CqlClientConnection receives an incoming EVENT frame.
type EventHandler func(event *frame.Frame, conn *CqlClientConnection)

// Dialer configures and establishes connections to a single CQL endpoint. It carries the collaborator-level
// configuration options: host and port, TLS, compression preference and the timeouts that bound negotiation and
// individual requests.
type Dialer struct {
	// Host is the remote contact point host or IP address.
	Host string
	// Port is the remote contact point port.
	Port int
	// UseTLS enables a TLS handshake on the underlying TCP connection.
	UseTLS bool
	// TLSConfig is used when UseTLS is true. A nil value uses the crypto/tls defaults; certificate validation is
	// delegated entirely to this config, the engine does not second-guess it.
	TLSConfig *tls.Config
	// NoCompress disables compression negotiation entirely, regardless of PreferredCompression.
	NoCompress bool
	// PreferredCompression is the algorithm the connection announces in STARTUP and uses for its frame bodies.
	// Connect uses it as is: it does not send OPTIONS and does not fall back according to the server's SUPPORTED
	// list.
	PreferredCompression primitive.Compression
	// StartupTimeout bounds establishing the TCP (or TLS) connection in Connect; it does not apply to the STARTUP
	// exchange that follows.
	StartupTimeout time.Duration
	// RequestTimeout bounds every individual request/response round trip after negotiation.
	RequestTimeout time.Duration
	// MaxInFlight is the maximum number of concurrently outstanding requests per connection. Must be strictly
	// positive and no greater than 2^15-1 (stream id 0 is the ManagedStreamId marker and -1 is reserved for events).
	MaxInFlight int
	// EventHandlers are invoked synchronously, in order, for every incoming EVENT frame.
	EventHandlers []EventHandler
}

// NewDialer returns a Dialer for the given host with the spec's documented defaults applied: port 9042, lz4
// preferred compression, 10s startup and request timeouts, and up to 32767 in-flight requests.
func NewDialer(host string) *Dialer {
	return &Dialer{
		Host:                  host,
		Port:                  DefaultPort,
		PreferredCompression:  DefaultPreferredCompression,
		StartupTimeout:        DefaultStartupTimeout,
		RequestTimeout:        DefaultRequestTimeout,
		MaxInFlight:           DefaultMaxInFlight,
	}
}

func (d *Dialer) String() string {
	return fmt.Sprintf("CQL dialer [%v:%v]", d.Host, d.Port)
}

func (d *Dialer) address() string {
	return net.JoinHostPort(d.Host, fmt.Sprintf("%d", d.Port))
}

// Connect establishes a new TCP (or TLS) connection to the dialer's endpoint. Set ctx to context.Background if no
// parent context exists. The returned CqlClientConnection is ready to use but not yet negotiated; call
// InitiateHandshake, or use ConnectAndInit to get a fully negotiated connection in one step.
func (d *Dialer) Connect(ctx context.Context) (*CqlClientConnection, error) {
	log.Debug().Msgf("%v: connecting", d)
	address := d.address()
	connectCtx, connectCancel := context.WithTimeout(ctx, d.StartupTimeout)
	defer connectCancel()
	var conn net.Conn
	var err error
	if d.UseTLS {
		dialer := &tls.Dialer{Config: d.TLSConfig}
		conn, err = dialer.DialContext(connectCtx, "tcp", address)
	} else {
		dialer := net.Dialer{}
		conn, err = dialer.DialContext(connectCtx, "tcp", address)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: cannot establish TCP connection: %w", d, err)
	}
	log.Debug().Msgf("%v: new TCP connection established", d)
	compression := primitive.CompressionNone
	if !d.NoCompress {
		compression = d.PreferredCompression
	}
	connection, err := newCqlClientConnection(conn, ctx, compression, d.MaxInFlight, d.RequestTimeout, d.EventHandlers)
	if err != nil {
		log.Err(err).Msgf("%v: cannot establish CQL connection", d)
		_ = conn.Close()
		return nil, err
	}
	log.Info().Msgf("%v: new CQL connection established: %v", d, connection)
	return connection, nil
}

// ConnectAndInit establishes a new connection, then runs the STARTUP negotiation. On return the connection is
// either Ready, or closed with an error describing why negotiation failed.
func (d *Dialer) ConnectAndInit(ctx context.Context, version primitive.ProtocolVersion) (*CqlClientConnection, error) {
	connection, err := d.Connect(ctx)
	if err != nil {
		return nil, err
	}
	if err := connection.InitiateHandshake(version, ManagedStreamId); err != nil {
		_ = connection.Close()
		return nil, err
	}
	return connection, nil
}

// CqlClientConnection encapsulates a TCP client connection to a single CQL endpoint and multiplexes requests over
// it using the stream-id protocol field.
type CqlClientConnection struct {
	conn            net.Conn
	frameCodec      frame.Codec
	compression     primitive.Compression
	requestTimeout  time.Duration
	handlers        []EventHandler
	streams         *streamRegistry
	outgoing        chan *frame.Frame
	events          chan *frame.Frame
	waitGroup       *sync.WaitGroup
	closed          int32
	ctx             context.Context
	cancel          context.CancelFunc
}

func newCqlClientConnection(
	conn net.Conn,
	ctx context.Context,
	compression primitive.Compression,
	maxInFlight int,
	requestTimeout time.Duration,
	handlers []EventHandler,
) (*CqlClientConnection, error) {
	if conn == nil {
		return nil, fmt.Errorf("TCP connection cannot be nil")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if maxInFlight < 1 || maxInFlight > math.MaxInt16 {
		return nil, fmt.Errorf("max in-flight: expecting 1..%d, got: %v", math.MaxInt16, maxInFlight)
	}
	if compression == "" {
		compression = primitive.CompressionNone
	}
	frameCodec := frame.NewCodecWithCompression(NewBodyCompressor(compression))
	connection := &CqlClientConnection{
		conn:           conn,
		frameCodec:     frameCodec,
		compression:    compression,
		requestTimeout: requestTimeout,
		handlers:       handlers,
		outgoing:       make(chan *frame.Frame, maxInFlight),
		events:         make(chan *frame.Frame, maxInFlight),
		waitGroup:      &sync.WaitGroup{},
	}
	connection.ctx, connection.cancel = context.WithCancel(ctx)
	connection.streams = newStreamRegistry(connection.String(), connection.ctx, maxInFlight, requestTimeout)
	connection.incomingLoop()
	connection.outgoingLoop()
	connection.awaitDone()
	return connection, nil
}

func (c *CqlClientConnection) String() string {
	return fmt.Sprintf("CQL client conn [L:%v <-> R:%v]", c.conn.LocalAddr(), c.conn.RemoteAddr())
}

// LocalAddr returns the connection's local address (that is, the client address).
func (c *CqlClientConnection) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the connection's remote address (that is, the server address).
func (c *CqlClientConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *CqlClientConnection) incomingLoop() {
	log.Debug().Msgf("%v: listening for incoming frames...", c)
	c.waitGroup.Add(1)
	go func() {
		abort := false
		for !abort && !c.IsClosed() {
			abort = c.readFrame(c.conn)
		}
		c.waitGroup.Done()
		if abort {
			c.abort()
		}
	}()
}

func (c *CqlClientConnection) outgoingLoop() {
	log.Debug().Msgf("%v: listening for outgoing frames...", c)
	c.waitGroup.Add(1)
	go func() {
		abort := false
		for !abort && !c.IsClosed() {
			if outgoing, ok := <-c.outgoing; !ok {
				if !c.IsClosed() {
					log.Error().Msgf("%v: outgoing frame channel was closed unexpectedly, closing connection", c)
					abort = true
				}
				break
			} else {
				log.Debug().Msgf("%v: sending outgoing frame: %v", c, outgoing)
				abort = c.writeFrame(outgoing, c.conn)
			}
		}
		c.waitGroup.Done()
		if abort {
			c.abort()
		}
	}()
}

func (c *CqlClientConnection) readFrame(source io.Reader) (abort bool) {
	if incoming, err := c.frameCodec.DecodeFrame(source); err != nil {
		abort = c.reportConnectionFailure(err, true)
	} else {
		abort = c.processIncomingFrame(incoming)
	}
	return abort
}

func (c *CqlClientConnection) writeFrame(outgoing *frame.Frame, dest io.Writer) (abort bool) {
	if err := c.frameCodec.EncodeFrame(outgoing, dest); err != nil {
		abort = c.reportConnectionFailure(err, false)
	} else {
		log.Debug().Msgf("%v: outgoing frame successfully written: %v", c, outgoing)
	}
	return abort
}

func (c *CqlClientConnection) reportConnectionFailure(err error, read bool) (abort bool) {
	if !c.IsClosed() {
		if err == io.EOF {
			log.Info().Msgf("%v: connection reset by peer, closing", c)
		} else if read {
			log.Error().Err(err).Msgf("%v: error reading, closing connection", c)
		} else {
			log.Error().Err(err).Msgf("%v: error writing, closing connection", c)
		}
		abort = true
	}
	return abort
}

func (c *CqlClientConnection) processIncomingFrame(incoming *frame.Frame) (abort bool) {
	log.Debug().Msgf("%v: received incoming frame: %v", c, incoming)
	if incoming.Header.StreamId == primitive.EventStreamId {
		for _, handler := range c.handlers {
			handler(incoming, c)
		}
		select {
		case c.events <- incoming:
			log.Debug().Msgf("%v: incoming event frame successfully delivered: %v", c, incoming)
		default:
			log.Error().Msgf("%v: events queue is full, discarding event frame: %v", c, incoming)
		}
		return
	}
	if err := c.streams.deliver(incoming); err != nil {
		log.Error().Err(err).Msgf("%v: incoming frame delivery failed: %v", c, incoming)
	} else {
		log.Debug().Msgf("%v: incoming frame successfully delivered: %v", c, incoming)
	}
	if incoming.Header.OpCode == primitive.OpCodeError {
		e := incoming.Body.Message.(message.Error)
		if e.GetErrorCode().IsFatalError() {
			log.Error().Msgf("%v: server replied with fatal error code %v, closing connection", c, e.GetErrorCode())
			abort = true
		}
	}
	return
}

func (c *CqlClientConnection) awaitDone() {
	c.waitGroup.Add(1)
	go func() {
		<-c.ctx.Done()
		log.Debug().Err(c.ctx.Err()).Msgf("%v: context was closed", c)
		c.waitGroup.Done()
		c.abort()
	}()
}

// NewStartupRequest builds a new STARTUP request frame. The COMPRESSION option is set automatically when the
// connection negotiated a compressor for this protocol version.
func (c *CqlClientConnection) NewStartupRequest(version primitive.ProtocolVersion, streamId int16) (*frame.Frame, error) {
	var startup *message.Startup
	if c.compression != primitive.CompressionNone {
		if !version.SupportsCompression(c.compression) {
			return nil, fmt.Errorf("%v does not support compression %v", version, c.compression)
		}
		startup = message.NewStartup(message.StartupOptionCompression, string(c.compression))
	} else {
		startup = message.NewStartup()
	}
	return frame.NewFrame(version, streamId, startup), nil
}

// InFlightRequest is an in-flight request sent through CqlClientConnection.Send.
type InFlightRequest interface {

	// StreamId is the in-flight request's stream id.
	StreamId() int16

	// Incoming returns a channel delivering the response frame for this request. The channel emits exactly one
	// frame, then is closed.
	Incoming() <-chan *frame.Frame

	// IsDone returns true once Incoming is closed.
	IsDone() bool

	// Err returns the error that closed Incoming abnormally, or nil.
	Err() error
}

// Send sends the given request frame and returns a handle used to await its response. If the frame's stream id is
// ManagedStreamId, a free stream id is assigned automatically.
func (c *CqlClientConnection) Send(f *frame.Frame) (InFlightRequest, error) {
	if f == nil {
		return nil, fmt.Errorf("%v: frame cannot be nil", c)
	}
	if c.IsClosed() {
		return nil, errs.NewConnectionDropped(fmt.Errorf("%v: connection closed", c))
	}
	log.Debug().Msgf("%v: enqueuing outgoing frame: %v", c, f)
	inFlight, err := c.streams.attach(f)
	if err != nil {
		return nil, err
	}
	select {
	case c.outgoing <- f:
		log.Debug().Msgf("%v: outgoing frame successfully enqueued: %v", c, f)
		return inFlight, nil
	default:
		return nil, fmt.Errorf("%v: failed to enqueue outgoing frame: %v", c, f)
	}
}

// Receive waits until the response frame for the given in-flight request arrives, or its timeout expires.
func (c *CqlClientConnection) Receive(ch InFlightRequest) (*frame.Frame, error) {
	if ch == nil {
		return nil, fmt.Errorf("%v: response channel cannot be nil", c)
	}
	log.Debug().Msgf("%v: waiting for incoming frame", c)
	incoming, ok := <-ch.Incoming()
	if !ok {
		if ch.Err() == nil {
			log.Debug().Msgf("%v: in-flight request closed for stream id: %d", c, ch.StreamId())
			return nil, nil
		}
		return nil, ch.Err()
	}
	log.Debug().Msgf("%v: incoming frame successfully received: %v", c, incoming)
	return incoming, nil
}

// SendAndReceive chains a call to Send with a call to Receive.
func (c *CqlClientConnection) SendAndReceive(f *frame.Frame) (*frame.Frame, error) {
	ch, err := c.Send(f)
	if err != nil {
		return nil, err
	}
	return c.Receive(ch)
}

// EventChannel is a receive-only channel of incoming EVENT frames.
type EventChannel <-chan *frame.Frame

// EventChannel returns the channel on which incoming EVENT frames are delivered. The channel is closed when the
// connection is closed.
func (c *CqlClientConnection) EventChannel() EventChannel {
	return c.events
}

// ReceiveEvent waits until an event frame is received, or the configured request timeout elapses, or the
// connection is closed, whichever happens first.
func (c *CqlClientConnection) ReceiveEvent() (*frame.Frame, error) {
	if c.IsClosed() {
		return nil, errs.NewConnectionDropped(fmt.Errorf("%v: connection closed", c))
	}
	select {
	case incoming, ok := <-c.events:
		if !ok {
			return nil, errs.NewConnectionDropped(fmt.Errorf("%v: incoming events channel closed", c))
		}
		return incoming, nil
	case <-time.After(c.requestTimeout):
		return nil, errs.NewRequestTimeout(fmt.Errorf("%v: timed out waiting for incoming events", c))
	}
}

func (c *CqlClientConnection) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func (c *CqlClientConnection) setClosed() bool {
	return atomic.CompareAndSwapInt32(&c.closed, 0, 1)
}

// Close shuts down the connection, completing every pending in-flight request with ConnectionDropped.
func (c *CqlClientConnection) Close() (err error) {
	if c.setClosed() {
		log.Debug().Msgf("%v: closing", c)
		c.cancel()
		err = c.conn.Close()
		outgoing := c.outgoing
		events := c.events
		c.outgoing = nil
		c.events = nil
		close(outgoing)
		close(events)
		c.streams.endAll(errs.NewConnectionDropped(fmt.Errorf("%v: connection closed", c)))
		c.waitGroup.Wait()
		if err != nil {
			err = fmt.Errorf("%v: error closing: %w", c, err)
		} else {
			log.Info().Msgf("%v: successfully closed", c)
		}
	} else {
		log.Debug().Err(err).Msgf("%v: already closed", c)
	}
	return err
}

func (c *CqlClientConnection) abort() {
	log.Debug().Msgf("%v: forcefully closing", c)
	if err := c.Close(); err != nil {
		log.Error().Err(err).Msgf("%v: error closing", c)
	}
}

// setFailed transitions the connection to the Failed state. Negotiation failures (a server demanding
// authentication, or sending an unexpected response in place of READY) have no recovery path other than closing
// the connection.
func (c *CqlClientConnection) setFailed() {
	log.Error().Msgf("%v: negotiation failed, connection transitioning to Failed", c)
	if err := c.Close(); err != nil {
		log.Error().Err(err).Msgf("%v: error closing failed connection", c)
	}
}
