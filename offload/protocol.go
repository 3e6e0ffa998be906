/*
 * protocol.go, part of molgraph.
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
	"encoding/json"
	"errors"
	"strings"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/grid"
)

// Request types.
const (
	TypeInferBonds        = "inferBonds"
	TypeBuildSpatialIndex = "buildSpatialIndex"
	TypeDetectAromatic    = "detectAromatic"
)

// Response types.
const (
	TypeBondsComplete        = "bondsComplete"
	TypeSpatialIndexComplete = "spatialIndexComplete"
	TypeAromaticComplete     = "aromaticComplete"
	TypeProgress             = "progress"
	TypeError                = "error"
)

// ProgressThreshold is the number of atoms above which a progress message
// is sent before starting the work.
const ProgressThreshold = 10000

// Error messages sent in error responses.
const (
	MissingAtoms = "Missing required field: atoms"
	UnknownType  = "Unknown message type"
	BadRequest   = "Malformed request"
)

// Request is a message asking the worker to do something. ID, if not nil, is copied
// to all the responses to the request. Atoms is required for inferBonds and
// buildSpatialIndex. A nil Atoms (or a JSON null) is taken as missing, while an empty,
// non-nil slice is a valid, empty, set of atoms. Bonds are explicit bonds kept by inferBonds.
// Tolerance, if nil, is chem.DefaultTolerance.
type Request struct {
	Type      string      `json:"type"`
	ID        *string     `json:"id,omitempty"`
	Atoms     []chem.Atom `json:"atoms"`
	Bonds     []chem.Bond `json:"bonds,omitempty"`
	Tolerance *float64    `json:"tolerance,omitempty"`
}

// Response is a message from the worker. Only the fields that correspond to
// Type are set.
type Response struct {
	Type          string       `json:"type"`
	ID            *string      `json:"id,omitempty"`
	Bonds         *[]chem.Bond `json:"bonds,omitempty"`
	Stats         *grid.Stats  `json:"stats,omitempty"`
	AromaticRings *[][]int     `json:"aromaticRings,omitempty"`
	Progress      *float64     `json:"progress,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// Final returns true for every response except progress notifications.
// Exactly one final response is sent for each request.
func (R *Response) Final() bool {
	return R.Type != TypeProgress
}

// Err returns the error carried by an error response, or nil for other responses.
func (R *Response) Err() error {
	if R.Type != TypeError {
		return nil
	}
	return errors.New(R.Error)
}

// BondList returns the bonds in a bondsComplete response, or nil.
func (R *Response) BondList() []chem.Bond {
	if R.Bonds == nil {
		return nil
	}
	return *R.Bonds
}

// Rings returns the rings in an aromaticComplete response, or nil.
func (R *Response) Rings() [][]int {
	if R.AromaticRings == nil {
		return nil
	}
	return *R.AromaticRings
}

// IDString returns the correlation id of the message, or the empty string if it has none.
func (R *Response) IDString() string {
	if R.ID == nil {
		return ""
	}
	return *R.ID
}

// ID returns a pointer to a copy of s, to be used as a message id.
func ID(s string) *string {
	return &s
}

// Tolerance returns a pointer to a copy of t, to be used in a Request.
func Tolerance(t float64) *float64 {
	return &t
}

func errorResponse(id *string, msg ...string) *Response {
	return &Response{Type: TypeError, ID: id, Error: strings.Join(msg, ": ")}
}

func bondsResponse(id *string, bonds []chem.Bond) *Response {
	if bonds == nil {
		bonds = []chem.Bond{}
	}
	return &Response{Type: TypeBondsComplete, ID: id, Bonds: &bonds}
}

func statsResponse(id *string, stats grid.Stats) *Response {
	return &Response{Type: TypeSpatialIndexComplete, ID: id, Stats: &stats}
}

func aromaticResponse(id *string) *Response {
	rings := [][]int{}
	return &Response{Type: TypeAromaticComplete, ID: id, AromaticRings: &rings}
}

func progressResponse(id *string, p float64) *Response {
	return &Response{Type: TypeProgress, ID: id, Progress: &p}
}

// Marshal serializes the response. Panics on failure, which can't happen
// for the types involved.
func (R *Response) Marshal() []byte {
	ret, err := json.Marshal(R)
	if err != nil {
		panic("offload: can't serialize response: " + err.Error())
	}
	return ret
}
