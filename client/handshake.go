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

	"github.com/rs/zerolog/log"

	"github.com/coldspire/cqlwire/errs"
	"github.com/coldspire/cqlwire/frame"
	"github.com/coldspire/cqlwire/message"
	"github.com/coldspire/cqlwire/primitive"
)

// PerformHandshake performs a handshake between the given client and server connections, using the provided protocol
// version and stream id.
func PerformHandshake(clientConn *CqlClientConnection, serverConn *CqlServerConnection, version primitive.ProtocolVersion, streamId int16) error {
	clientChan := make(chan error)
	serverChan := make(chan error)
	go func() {
		clientChan <- clientConn.InitiateHandshake(version, streamId)
	}()
	go func() {
		serverChan <- serverConn.AcceptHandshake()
	}()
	for clientChan != nil || serverChan != nil {
		select {
		case err := <-clientChan:
			if err != nil {
				return fmt.Errorf("client handshake failed: %w", err)
			}
			clientChan = nil
		case err := <-serverChan:
			if err != nil {
				return fmt.Errorf("server handshake failed %w", err)
			}
			serverChan = nil
		}
	}
	return nil
}

// InitiateHandshake initiates the negotiation phase of the connection: it sends STARTUP with the connection's
// configured compression algorithm, if any, and expects READY in response. No OPTIONS request is sent first. An AUTHENTICATE response is recognized but not
// acted upon: authentication is out of scope, and receiving it transitions the connection to Failed.
func (c *CqlClientConnection) InitiateHandshake(version primitive.ProtocolVersion, streamId int16) (err error) {
	log.Debug().Msgf("%v: performing handshake", c)
	startup, err := c.NewStartupRequest(version, streamId)
	if err != nil {
		return err
	}
	var response *frame.Frame
	if response, err = c.SendAndReceive(startup); err == nil {
		switch msg := response.Body.Message.(type) {
		case *message.Ready:
			// negotiation complete
		case *message.Authenticate:
			c.setFailed()
			err = errs.NewProtocolError(fmt.Sprintf("server requires authentication via %q, which is not supported", msg.Authenticator))
		default:
			c.setFailed()
			err = errs.NewProtocolError(fmt.Sprintf("expected READY or AUTHENTICATE, got %v", response.Body.Message))
		}
	}
	if err == nil {
		log.Info().Msgf("%v: handshake successful", c)
	} else {
		log.Error().Err(err).Msgf("%v: handshake failed", c)
	}
	return err
}

// AcceptHandshake listens for a client STARTUP request and replies with READY. This is a test-harness
// implementation: it never challenges with AUTHENTICATE, since authentication is out of scope.
// This method is intended for use when server-side handshake should be triggered manually. For automatic server-side
// handshake, consider using HandshakeHandler instead.
func (c *CqlServerConnection) AcceptHandshake() (err error) {
	log.Debug().Msgf("%v: performing handshake", c)
	var request *frame.Frame
	done := false
	for !done && err == nil {
		if request, err = c.Receive(); err == nil {
			switch request.Body.Message.(type) {
			case *message.Options:
				supported := frame.NewFrame(request.Header.Version, request.Header.StreamId, &message.Supported{})
				err = c.Send(supported)
				continue
			case *message.Startup:
				ready := frame.NewFrame(request.Header.Version, request.Header.StreamId, &message.Ready{})
				err = c.Send(ready)
				done = true
			default:
				err = fmt.Errorf("expected STARTUP or OPTIONS, got %v", request.Body.Message)
				done = true
			}
		}
	}
	if err == nil {
		log.Info().Msgf("%v: handshake successful", c)
	} else {
		log.Error().Err(err).Msgf("%v: handshake failed", c)
	}
	return err
}

const (
	handshakeStateKey  = "HANDSHAKE"
	handshakeStateDone = "DONE"
)

// HandshakeHandler is a RequestHandler to handle server-side handshakes. This is an alternative to
// CqlServerConnection.AcceptHandshake to make the server connection automatically handle all incoming handshake
// attempts.
var HandshakeHandler RequestHandler = func(request *frame.Frame, conn *CqlServerConnection, ctx RequestHandlerContext) (response *frame.Frame) {
	if ctx.GetAttribute(handshakeStateKey) == handshakeStateDone {
		return
	}
	version := request.Header.Version
	id := request.Header.StreamId
	switch msg := request.Body.Message.(type) {
	case *message.Options:
		log.Debug().Msgf("%v: [handshake handler]: intercepted OPTIONS before STARTUP", conn)
		response = frame.NewFrame(version, id, &message.Supported{})
	case *message.Startup:
		ctx.PutAttribute(handshakeStateKey, handshakeStateDone)
		log.Info().Msgf("%v: [handshake handler]: handshake successful", conn)
		response = frame.NewFrame(version, id, &message.Ready{})
	default:
		ctx.PutAttribute(handshakeStateKey, handshakeStateDone)
		log.Error().Msgf("%v: [handshake handler]: expected OPTIONS or STARTUP, got %v", conn, msg)
		response = frame.NewFrame(version, id, &message.ProtocolError{ErrorMessage: "handshake failed"})
	}
	return
}

func isReady(f *frame.Frame) bool {
	_, ok := f.Body.Message.(*message.Ready)
	return ok
}

func isAuthenticate(f *frame.Frame) bool {
	_, ok := f.Body.Message.(*message.Authenticate)
	return ok
}
