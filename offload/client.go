/*
 * client.go, part of molgraph.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package offload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrClosed      = errors.New("offload: client closed")
	ErrDuplicateID = errors.New("offload: a request with the same id is pending")
)

// Client runs a Worker in its own goroutine and matches the responses to the
// requests that caused them, through their ids. It is safe for concurrent use.
type Client struct {
	in      chan *Request
	out     chan *Response
	cancel  context.CancelFunc
	done    chan struct{} //closed by Close
	stopped chan struct{} //closed when the worker goroutine returns
	routed  chan struct{} //closed when the router goroutine returns
	once    sync.Once

	mu      sync.Mutex
	pending map[string]chan *Response //nil channel: abandoned, waiting for its final response
}

// NewClient starts W in a new goroutine and returns a Client for it.
// If W is nil, a new Worker is used.
func NewClient(W *Worker) *Client {
	if W == nil {
		W = NewWorker()
	}
	ctx, cancel := context.WithCancel(context.Background())
	C := &Client{
		in:      make(chan *Request),
		out:     make(chan *Response, 4),
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		routed:  make(chan struct{}),
		pending: make(map[string]chan *Response),
	}
	go func() {
		defer close(C.stopped)
		W.Run(ctx, C.in, C.out)
	}()
	go C.route()
	return C
}

// Submit sends req to the worker and returns the channel where its responses
// will arrive: an optional progress message, then the final response, after which the
// channel is closed. If req has no id, a random one is assigned to the copy that is sent.
// The channel is also closed, without a final response, if the client is closed first.
// An id can't be reused until the final response of the request that had it arrives,
// even if that request was abandoned by Call.
func (C *Client) Submit(req *Request) (<-chan *Response, error) {
	_, ch, err := C.submit(req)
	return ch, err
}

func (C *Client) submit(req *Request) (string, <-chan *Response, error) {
	if req == nil {
		return "", nil, fmt.Errorf("offload: nil request")
	}
	r := *req
	if r.ID == nil {
		r.ID = ID(uuid.NewString())
	}
	ch := make(chan *Response, 2)
	C.mu.Lock()
	if C.isClosed() {
		C.mu.Unlock()
		return "", nil, ErrClosed
	}
	if _, ok := C.pending[*r.ID]; ok {
		C.mu.Unlock()
		return "", nil, ErrDuplicateID
	}
	C.pending[*r.ID] = ch
	C.mu.Unlock()
	select {
	case C.in <- &r:
		return *r.ID, ch, nil
	case <-C.done:
		C.forget(*r.ID)
		return "", nil, ErrClosed
	}
}

// Call submits req and waits for its final response. If the response is an
// error response, it is returned together with its error. If ctx is done
// first, the request is abandoned (it will still run, and its id stays taken until
// it finishes) and ctx's error returned.
func (C *Client) Call(ctx context.Context, req *Request) (*Response, error) {
	id, ch, err := C.submit(req)
	if err != nil {
		return nil, err
	}
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return nil, ErrClosed
			}
			if r.Final() {
				return r, r.Err()
			}
		case <-ctx.Done():
			C.abandon(id)
			return nil, ctx.Err()
		}
	}
}

// Pending returns the number of requests without a final response, abandoned ones included.
func (C *Client) Pending() int {
	C.mu.Lock()
	defer C.mu.Unlock()
	return len(C.pending)
}

// Close stops the worker once the current request, if any, is done, and closes
// the channels of all pending requests.
func (C *Client) Close() error {
	C.once.Do(func() {
		C.mu.Lock()
		close(C.done)
		C.mu.Unlock()
		C.cancel()
		<-C.stopped
		<-C.routed
		C.mu.Lock()
		for id, ch := range C.pending {
			if ch != nil {
				close(ch)
			}
			delete(C.pending, id)
		}
		C.mu.Unlock()
	})
	return nil
}

func (C *Client) isClosed() bool {
	select {
	case <-C.done:
		return true
	default:
		return false
	}
}

func (C *Client) forget(id string) {
	C.mu.Lock()
	delete(C.pending, id)
	C.mu.Unlock()
}

// abandon keeps id registered, with no channel, so its remaining
// responses are dropped instead of reaching a new request with the same id.
func (C *Client) abandon(id string) {
	C.mu.Lock()
	if _, ok := C.pending[id]; ok {
		C.pending[id] = nil
	}
	C.mu.Unlock()
}

// route delivers each response to the channel of its request.
func (C *Client) route() {
	defer close(C.routed)
	for {
		select {
		case r := <-C.out:
			C.deliver(r)
		case <-C.stopped:
			for {
				select {
				case r := <-C.out:
					C.deliver(r)
				default:
					return
				}
			}
		}
	}
}

func (C *Client) deliver(r *Response) {
	if r.ID == nil {
		log.Printf("offload: dropping %s response without id", r.Type)
		return
	}
	C.mu.Lock()
	defer C.mu.Unlock()
	ch, ok := C.pending[*r.ID]
	if !ok {
		return
	}
	if ch != nil {
		ch <- r //never blocks: at most one progress and one final response per request
	}
	if r.Final() {
		if ch != nil {
			close(ch)
		}
		delete(C.pending, *r.ID)
	}
}
