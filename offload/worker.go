/*
 * worker.go, part of molgraph.
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
	"fmt"
	"sync/atomic"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Worker runs requests one at a time. A request, once started, runs to completion.
// The zero value is ready to use. Handled can be called from any goroutine.
type Worker struct {
	handled atomic.Int64
}

// NewWorker returns a new Worker.
func NewWorker() *Worker {
	return new(Worker)
}

// Handled returns the number of requests the worker has processed.
func (W *Worker) Handled() int {
	return int(W.handled.Load())
}

// Handle processes req and calls emit with each response: at most one
// progress notification (for requests with more than ProgressThreshold atoms) and then
// exactly one final response. Failures, including panics, are sent as error responses.
func (W *Worker) Handle(req *Request, emit func(*Response)) {
	W.handled.Add(1)
	if req == nil {
		emit(errorResponse(nil, BadRequest, "nil request"))
		return
	}
	id := req.ID
	sent := false
	send := func(r *Response) {
		if r.Final() {
			sent = true
		}
		emit(r)
	}
	defer func() {
		if r := recover(); r != nil && !sent {
			emit(errorResponse(id, fmt.Sprint(r)))
		}
	}()
	switch req.Type {
	case TypeInferBonds:
		if req.Atoms == nil {
			send(errorResponse(id, MissingAtoms))
			return
		}
		notify(req, send)
		tol := chem.DefaultTolerance
		if req.Tolerance != nil {
			tol = *req.Tolerance
		}
		send(bondsResponse(id, chem.InferBondsWith(req.Atoms, req.Bonds, tol)))
	case TypeBuildSpatialIndex:
		if req.Atoms == nil {
			send(errorResponse(id, MissingAtoms))
			return
		}
		notify(req, send)
		points := make([]r3.Vec, len(req.Atoms))
		for i := range req.Atoms {
			points[i] = req.Atoms[i].Coords()
		}
		send(statsResponse(id, grid.Build(points, grid.DefaultCellSize).Stats()))
	case TypeDetectAromatic:
		//Ring perception is not implemented, the result is always empty.
		send(aromaticResponse(id))
	default:
		send(errorResponse(id, UnknownType, req.Type))
	}
}

// notify sends the initial progress message for large requests.
func notify(req *Request, send func(*Response)) {
	if len(req.Atoms) > ProgressThreshold {
		send(progressResponse(req.ID, 0))
	}
}

// Run handles the requests received from in, in order, and sends the responses to out.
// It returns nil when in is closed, or the context's error when ctx is done. Cancelling
// ctx doesn't interrupt a request being processed, but its pending responses are dropped.
func (W *Worker) Run(ctx context.Context, in <-chan *Request, out chan<- *Response) error {
	emit := func(r *Response) {
		select {
		case out <- r:
		case <-ctx.Done():
		}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-in:
			if !ok {
				return nil
			}
			W.Handle(req, emit)
		}
	}
}
