/*
 * transport.go, part of molgraph.
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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
)

// DecodeRequest decodes one JSON request.
func DecodeRequest(line []byte) (*Request, error) {
	req := new(Request)
	if err := json.Unmarshal(line, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeResponse decodes one JSON response, as written by Serve.
func DecodeResponse(line []byte) (*Response, error) {
	resp := new(Response)
	if err := json.Unmarshal(line, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Serve reads requests from r, one JSON object per line, has w handle them, and writes
// each response to out as one line of JSON. Lines that can't be decoded get an error
// response without id. Empty lines are ignored. Serve returns nil at the end of the input,
// or the context error if ctx is done. It is meant to let programs in other languages
// use the worker through pipes.
func Serve(ctx context.Context, W *Worker, r io.Reader, out io.Writer) error {
	in := bufio.NewReader(r)
	enc := json.NewEncoder(out)
	var werr error
	emit := func(resp *Response) {
		if werr != nil {
			return
		}
		if err := enc.Encode(resp); err != nil {
			werr = fmt.Errorf("writing response: %w", err)
		}
	}
	for lineno := 1; ; lineno++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := in.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading request %d: %w", lineno, err)
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			req, derr := DecodeRequest(trimmed)
			if derr != nil {
				log.Printf("offload: request in line %d: %v", lineno, derr)
				emit(errorResponse(nil, BadRequest, derr.Error()))
			} else {
				W.Handle(req, emit)
			}
			if werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}
