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
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coldspire/cqlwire/errs"
	"github.com/coldspire/cqlwire/frame"
	"github.com/coldspire/cqlwire/primitive"
)

// streamRegistry allocates stream ids for outgoing requests and correlates incoming frames back to their slot.
// Allocation uses a monotonically advancing cursor modulo 2^15, scanning forward over the live set; this avoids
// handing out an id that is still in flight without needing a full free-list. Neither the event id
// (primitive.EventStreamId) nor ManagedStreamId (0) is ever issued.
type streamRegistry struct {
	connectionId string
	ctx          context.Context
	maxInFlight  int
	timeout      time.Duration
	cursor       int16
	slots        map[int16]*inFlightRequest
	lock         *sync.RWMutex
	closed       int32
}

func newStreamRegistry(connectionId string, ctx context.Context, maxInFlight int, timeout time.Duration) *streamRegistry {
	return &streamRegistry{
		connectionId: connectionId,
		ctx:          ctx,
		maxInFlight:  maxInFlight,
		timeout:      timeout,
		cursor:       0,
		slots:        make(map[int16]*inFlightRequest, maxInFlight),
		lock:         &sync.RWMutex{},
	}
}

func (r *streamRegistry) String() string {
	return fmt.Sprintf("%v: [stream registry]", r.connectionId)
}

// attach allocates a stream id (if the frame uses ManagedStreamId) and registers a slot for it, returning the
// handle the caller awaits a response on.
func (r *streamRegistry) attach(f *frame.Frame) (InFlightRequest, error) {
	if r.isClosed() {
		return nil, errs.NewConnectionDropped(fmt.Errorf("%v: registry closed", r))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	streamId := f.Header.StreamId
	if streamId == ManagedStreamId {
		id, err := r.allocateLocked()
		if err != nil {
			return nil, err
		}
		streamId = id
		f.Header.StreamId = streamId
	} else if _, found := r.slots[streamId]; found {
		return nil, fmt.Errorf("%v: stream id already in use: %d", r, streamId)
	}
	inFlight := newInFlightRequest(r.String(), streamId, r.ctx, r.timeout)
	r.slots[streamId] = inFlight
	inFlight.startTimeout()
	return inFlight, nil
}

// allocateLocked scans forward from the cursor, skipping live ids, the reserved event id and ManagedStreamId, until
// it finds a free one or concludes the space is exhausted. Must be called with r.lock held.
func (r *streamRegistry) allocateLocked() (int16, error) {
	if len(r.slots) >= r.maxInFlight || len(r.slots) > int(primitive.MaxStreamId) {
		return 0, errs.NewTooManyStreams(r.maxInFlight)
	}
	for i := 0; i <= int(primitive.MaxStreamId); i++ {
		candidate := r.cursor
		r.cursor++
		if r.cursor > primitive.MaxStreamId {
			r.cursor = 0
		}
		if candidate == primitive.EventStreamId || candidate == ManagedStreamId {
			continue
		}
		if _, found := r.slots[candidate]; !found {
			log.Trace().Msgf("%v: allocated stream id: %v", r, candidate)
			return candidate, nil
		}
	}
	return 0, errs.NewTooManyStreams(r.maxInFlight)
}

// deliver routes an incoming frame to its slot, removing the slot from the registry before firing the slot's
// completion signal so a concurrent allocation can never reuse the id while delivery is in flight.
func (r *streamRegistry) deliver(f *frame.Frame) error {
	if r.isClosed() {
		return errs.NewConnectionDropped(fmt.Errorf("%v: registry closed", r))
	}
	streamId := f.Header.StreamId
	r.lock.Lock()
	inFlight, found := r.slots[streamId]
	if found {
		delete(r.slots, streamId)
	}
	r.lock.Unlock()
	if !found {
		return fmt.Errorf("%v: unknown stream id: %d", r, streamId)
	}
	return inFlight.complete(f, nil)
}

// endAll completes every live slot with the given error and clears the registry. Used on connection teardown.
func (r *streamRegistry) endAll(err error) {
	r.lock.Lock()
	slots := r.slots
	r.slots = make(map[int16]*inFlightRequest)
	r.lock.Unlock()
	for streamId, inFlight := range slots {
		_ = inFlight.complete(nil, err)
		log.Trace().Msgf("%v: ended in-flight stream id %d: %v", r, streamId, err)
	}
}

func (r *streamRegistry) isClosed() bool {
	return atomic.LoadInt32(&r.closed) == 1
}

// inFlightRequest is the pending-slot record for one outstanding request: the completion signal a caller awaits.
type inFlightRequest struct {
	connectionId  string
	streamId      int16
	incoming      chan *frame.Frame
	err           error
	done          bool
	timeout       time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
	timeoutCtx    context.Context
	timeoutCancel context.CancelFunc
	lock          *sync.RWMutex
}

func newInFlightRequest(connectionId string, streamId int16, ctx context.Context, timeout time.Duration) *inFlightRequest {
	ctx, cancel := context.WithCancel(ctx)
	return &inFlightRequest{
		connectionId: connectionId,
		streamId:     streamId,
		incoming:     make(chan *frame.Frame, 1),
		timeout:      timeout,
		ctx:          ctx,
		cancel:       cancel,
		lock:         &sync.RWMutex{},
	}
}

func (r *inFlightRequest) String() string {
	return fmt.Sprintf("%v [stream id %d]", r.connectionId, r.streamId)
}

func (r *inFlightRequest) StreamId() int16 { return r.streamId }

func (r *inFlightRequest) Incoming() <-chan *frame.Frame {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.incoming
}

func (r *inFlightRequest) IsDone() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.done
}

func (r *inFlightRequest) Err() error {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.err
}

func (r *inFlightRequest) startTimeout() {
	r.timeoutCtx, r.timeoutCancel = context.WithTimeout(r.ctx, r.timeout)
	go func() {
		<-r.timeoutCtx.Done()
		if r.timeoutCtx.Err() == context.DeadlineExceeded {
			_ = r.complete(nil, errs.NewRequestTimeout(fmt.Errorf("%v: timed out waiting for response", r)))
		}
	}()
}

// complete delivers the response frame (or the given error) exactly once, closing Incoming.
func (r *inFlightRequest) complete(f *frame.Frame, err error) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.done {
		return nil
	}
	if r.timeoutCancel != nil {
		r.timeoutCancel()
	}
	r.cancel()
	r.done = true
	r.err = err
	if f != nil {
		r.incoming <- f
	}
	close(r.incoming)
	return nil
}
