// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Falco Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
)

// Counter is the set of operations run applies, implemented by
// *loader.Counter.
type Counter interface {
	Value() uint32
	Snapshot() counter.Snapshot
	Increment() uint32
	Decrement() uint32
	IncrementBy(amount uint32) uint32
	DecrementBy(amount uint32) uint32
	IncrementByMany(amounts ...uint32) uint32
	DecrementByMany(amounts ...uint32) uint32
	Positions() []counter.Point2D
}

type opKind int

const (
	opIncrement opKind = iota
	opDecrement
	opIncrementBy
	opDecrementBy
	opIncrementByMany
	opDecrementByMany
	opValue
	opSnapshot
	opPositions
)

type op struct {
	kind    opKind
	amounts []uint32
}

func parseOps(args []string) ([]op, error) {
	var res []op
	for _, arg := range args {
		o, err := parseOp(arg)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, nil
}

func parseOp(arg string) (op, error) {
	name, param, hasParam := strings.Cut(arg, ":")
	var kind opKind
	switch name {
	case "inc":
		kind = opIncrement
		if hasParam {
			kind = opIncrementBy
		}
	case "dec":
		kind = opDecrement
		if hasParam {
			kind = opDecrementBy
		}
	case "incm":
		kind = opIncrementByMany
	case "decm":
		kind = opDecrementByMany
	case "value":
		kind = opValue
	case "snapshot":
		kind = opSnapshot
	case "positions":
		kind = opPositions
	default:
		return op{}, fmt.Errorf("unknown operation %q", arg)
	}

	res := op{kind: kind}
	switch kind {
	case opIncrementBy, opDecrementBy:
		v, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			return op{}, fmt.Errorf("invalid amount in %q: %s", arg, err.Error())
		}
		res.amounts = []uint32{uint32(v)}
	case opIncrementByMany, opDecrementByMany:
		if !hasParam {
			return op{}, fmt.Errorf("missing amounts in %q", arg)
		}
		if len(param) == 0 {
			break
		}
		for _, s := range strings.Split(param, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
			if err != nil {
				return op{}, fmt.Errorf("invalid amount in %q: %s", arg, err.Error())
			}
			res.amounts = append(res.amounts, uint32(v))
		}
	default:
		if hasParam {
			return op{}, fmt.Errorf("operation %q takes no argument", name)
		}
	}
	return res, nil
}

func (o op) apply(c Counter, w io.Writer) {
	switch o.kind {
	case opIncrement:
		fmt.Fprintln(w, c.Increment())
	case opDecrement:
		fmt.Fprintln(w, c.Decrement())
	case opIncrementBy:
		fmt.Fprintln(w, c.IncrementBy(o.amounts[0]))
	case opDecrementBy:
		fmt.Fprintln(w, c.DecrementBy(o.amounts[0]))
	case opIncrementByMany:
		fmt.Fprintln(w, c.IncrementByMany(o.amounts...))
	case opDecrementByMany:
		fmt.Fprintln(w, c.DecrementByMany(o.amounts...))
	case opValue:
		fmt.Fprintln(w, c.Value())
	case opSnapshot:
		s := c.Snapshot()
		fmt.Fprintf(w, "value=%d step=%d\n", s.Value, s.Step)
	case opPositions:
		var points []string
		for _, p := range c.Positions() {
			points = append(points, fmt.Sprintf("(%g,%g)", p.X, p.Y))
		}
		fmt.Fprintln(w, strings.Join(points, " "))
	}
}
