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
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog/log"
)

// pendingConn tracks one client slot on the server side: a channel that the accept
// loop publishes to once the wire-level connection for that client address is
// live, plus the connection itself once known.
type pendingConn struct {
	ready chan *CqlServerConnection
	conn  *CqlServerConnection
}

// connRegistry bounds and tracks server-side connections per accepted client
// address so that CqlServer.Accept callers can wait on the specific socket they
// asked for rather than racing over a single shared channel.
type connRegistry struct {
	ownerId string
	limit   int

	mu     sync.RWMutex
	byAddr map[string]*pendingConn
	stream chan *CqlServerConnection
	closed bool
}

func newConnRegistry(ownerId string, limit int) (*connRegistry, error) {
	if limit < 1 {
		return nil, fmt.Errorf("max connections: expecting positive, got: %v", limit)
	}
	return &connRegistry{
		ownerId: ownerId,
		limit:   limit,
		byAddr:  make(map[string]*pendingConn, limit),
		stream:  make(chan *CqlServerConnection, limit),
	}, nil
}

func (r *connRegistry) String() string {
	return fmt.Sprintf("%v: [conn. handler]", r.ownerId)
}

// anyConnectionChannel exposes every connection the registry accepts, in accept order,
// regardless of which client address it belongs to.
func (r *connRegistry) anyConnectionChannel() <-chan *CqlServerConnection {
	return r.stream
}

func (r *connRegistry) allAcceptedClients() []*CqlServerConnection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	live := make([]*CqlServerConnection, 0, len(r.byAddr))
	for _, p := range r.byAddr {
		if p.conn != nil && !p.conn.IsClosed() {
			live = append(live, p.conn)
		}
	}
	return live
}

// awaitSlot reserves (or reuses) the wait channel for the local address the client
// intends to dial from, so a later onAccepted call for that same address can hand
// the connection back to whichever goroutine is waiting on it.
func (r *connRegistry) awaitSlot(client *CqlClientConnection) (<-chan *CqlServerConnection, error) {
	addr, err := addrKey(client.conn.LocalAddr())
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, fmt.Errorf("%v: handler closed", r)
	}
	log.Trace().Msgf("%v: client accept requested: %v", r, addr)
	p, found := r.byAddr[addr]
	if !found {
		if len(r.byAddr) == r.limit {
			return nil, fmt.Errorf("%v: too many connections: %v", r, r.limit)
		}
		log.Trace().Msgf("%v: client address unknown, registering new channel: %v", r, addr)
		p = &pendingConn{ready: make(chan *CqlServerConnection, 1)}
		r.byAddr[addr] = p
	}
	return p.ready, nil
}

func (r *connRegistry) onAccepted(conn *CqlServerConnection) error {
	addr, err := addrKey(conn.conn.RemoteAddr())
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("%v: handler closed", r)
	}
	log.Trace().Msgf("%v: client accepted: %v", r, conn.conn.RemoteAddr())
	p, found := r.byAddr[addr]
	if found {
		p.conn = conn
	} else {
		if len(r.byAddr) == r.limit {
			return fmt.Errorf("%v: too many connections: %v", r, r.limit)
		}
		log.Trace().Msgf("%v: client address unknown, registering new channel: %v", r, conn.conn.RemoteAddr())
		p = &pendingConn{ready: make(chan *CqlServerConnection, 1), conn: conn}
		r.byAddr[addr] = p
	}
	p.ready <- conn
	r.stream <- conn
	return nil
}

func (r *connRegistry) onClosed(conn *CqlServerConnection) {
	addr, err := addrKey(conn.conn.RemoteAddr())
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if p, found := r.byAddr[addr]; found {
		log.Trace().Msgf("%v: client address removed: %v", r, conn.conn.RemoteAddr())
		delete(r.byAddr, addr)
		close(p.ready)
	} else {
		log.Trace().Msgf("%v: client address not found, ignoring: %v", r, conn.conn.RemoteAddr())
	}
}

func (r *connRegistry) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *connRegistry) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	log.Trace().Msgf("%v: closing", r)
	for addr, p := range r.byAddr {
		delete(r.byAddr, addr)
		if p.conn != nil {
			if err := p.conn.Close(); err != nil {
				log.Error().Err(err).Msg(err.Error())
			}
		}
		close(p.ready)
	}
	close(r.stream)
	log.Trace().Msgf("%v: successfully closed", r)
}

// addrKey folds a net.Addr down to a string usable as a map key, including the
// zone so link-local IPv6 addresses on distinct interfaces don't collide.
func addrKey(addr net.Addr) (string, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return "", fmt.Errorf("expected TCP address, got: %v", addr)
	}
	return fmt.Sprintf("%v__%v__%v", tcpAddr.IP.String(), tcpAddr.Port, tcpAddr.Zone), nil
}
