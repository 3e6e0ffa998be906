/*
 * client_test.go, part of molgraph.
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
	"sync"
	"testing"
	"time"
)

func TestClientCall(Te *testing.T) {
	C := NewClient(nil)
	defer C.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	r, err := C.Call(ctx, &Request{Type: TypeInferBonds, Atoms: twoAtoms()})
	if err != nil {
		Te.Fatal(err)
	}
	if r.Type != TypeBondsComplete || len(r.BondList()) != 1 || r.IDString() == "" {
		Te.Errorf("Wrong response %s", r.Marshal())
	}
	r, err = C.Call(ctx, &Request{Type: TypeInferBonds, ID: ID("no atoms")})
	if err == nil || err.Error() != MissingAtoms || r == nil || r.IDString() != "no atoms" {
		Te.Errorf("Expected the error response, got %v, %v", r, err)
	}
	if C.Pending() != 0 {
		Te.Errorf("No request should be pending, got %d", C.Pending())
	}
}

func TestClientConcurrent(Te *testing.T) {
	C := NewClient(NewWorker())
	defer C.Close()
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			typ := TypeInferBonds
			if i%2 == 0 {
				typ = TypeBuildSpatialIndex
			}
			r, err := C.Call(context.Background(), &Request{Type: typ, Atoms: manyAtoms(10 + i)})
			if err != nil {
				errs <- err
				return
			}
			if (typ == TypeInferBonds && len(r.BondList()) != 9+i) || (typ == TypeBuildSpatialIndex && r.Stats == nil) {
				Te.Errorf("Request %d got the wrong response %s", i, r.Marshal())
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		Te.Error(err)
	}
}

func TestClientSubmitProgress(Te *testing.T) {
	C := NewClient(nil)
	defer C.Close()
	ch, err := C.Submit(&Request{Type: TypeBuildSpatialIndex, ID: ID("big"), Atoms: manyAtoms(ProgressThreshold + 1)})
	if err != nil {
		Te.Fatal(err)
	}
	var types []string
	for r := range ch {
		if r.IDString() != "big" {
			Te.Errorf("Wrong id %q", r.IDString())
		}
		types = append(types, r.Type)
	}
	if len(types) != 2 || types[0] != TypeProgress || types[1] != TypeSpatialIndexComplete {
		Te.Errorf("Expected progress and then the result, got %v", types)
	}
	if _, err := C.Submit(nil); err == nil {
		Te.Errorf("Expected an error for a nil request")
	}
}

func TestClientClose(Te *testing.T) {
	C := NewClient(nil)
	if err := C.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := C.Close(); err != nil {
		Te.Errorf("A second Close should do nothing, got %v", err)
	}
	if _, err := C.Submit(&Request{Type: TypeDetectAromatic}); err != ErrClosed {
		Te.Errorf("Expected %v, got %v", ErrClosed, err)
	}
	if _, err := C.Call(context.Background(), &Request{Type: TypeDetectAromatic}); err != ErrClosed {
		Te.Errorf("Expected %v, got %v", ErrClosed, err)
	}
}

func TestClientCancelledCall(Te *testing.T) {
	C := NewClient(nil)
	defer C.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := C.Call(ctx, &Request{Type: TypeBuildSpatialIndex, Atoms: manyAtoms(ProgressThreshold * 3)})
	if err != nil && err != context.Canceled {
		Te.Errorf("Expected nil or %v, got %v", context.Canceled, err)
	}
	if C.Pending() != 0 && err == nil {
		Te.Errorf("A finished call should leave nothing pending")
	}
}

// The id of an abandoned request stays taken until the request finishes, so
// its responses never reach a later request with the same id.
func TestClientAbandonedID(Te *testing.T) {
	C := NewClient(nil)
	defer C.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := C.Call(ctx, &Request{Type: TypeInferBonds, ID: ID("job"), Atoms: manyAtoms(2 * ProgressThreshold)})
	if err != nil && err != context.Canceled {
		Te.Fatalf("Expected nil or %v, got %v", context.Canceled, err)
	}
	deadline := time.Now().Add(30 * time.Second)
	for {
		r, err := C.Call(context.Background(), &Request{Type: TypeDetectAromatic, ID: ID("job")})
		if err == ErrDuplicateID {
			if time.Now().After(deadline) {
				Te.Fatal("The abandoned request never finished")
			}
			time.Sleep(time.Millisecond)
			continue
		}
		if err != nil {
			Te.Fatal(err)
		}
		if r.Type != TypeAromaticComplete {
			Te.Errorf("A response for the abandoned request reached the new one: %s", r.Marshal())
		}
		break
	}
}

func TestClientAbandonBookkeeping(Te *testing.T) {
	C := NewClient(nil)
	defer C.Close()
	C.mu.Lock()
	C.pending["old"] = make(chan *Response, 2)
	C.mu.Unlock()
	C.abandon("old")
	if _, err := C.Submit(&Request{Type: TypeDetectAromatic, ID: ID("old")}); err != ErrDuplicateID {
		Te.Errorf("Expected %v for the id of an abandoned request, got %v", ErrDuplicateID, err)
	}
	C.deliver(&Response{Type: TypeProgress, ID: ID("old")})
	if C.Pending() != 1 {
		Te.Errorf("A progress message must not release the id")
	}
	C.deliver(&Response{Type: TypeBondsComplete, ID: ID("old")})
	if C.Pending() != 0 {
		Te.Errorf("The final response should release the id, %d pending", C.Pending())
	}
	r, err := C.Call(context.Background(), &Request{Type: TypeDetectAromatic, ID: ID("old")})
	if err != nil || r.Type != TypeAromaticComplete {
		Te.Errorf("Expected an aromaticComplete response, got %v, %v", r, err)
	}
	C.abandon("never submitted")
	if C.Pending() != 0 {
		Te.Errorf("Abandoning an unknown id should do nothing")
	}
}

// Handled is read while the client's goroutine runs the worker.
func TestClientHandled(Te *testing.T) {
	W := NewWorker()
	C := NewClient(W)
	defer C.Close()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			if _, err := C.Call(context.Background(), &Request{Type: TypeDetectAromatic}); err != nil {
				Te.Error(err)
			}
		}
	}()
	last := 0
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		h := W.Handled()
		if h < last || h > 10 {
			Te.Fatalf("Handled went from %d to %d", last, h)
		}
		last = h
	}
	if W.Handled() != 10 {
		Te.Errorf("Expected 10 handled requests, got %d", W.Handled())
	}
}
