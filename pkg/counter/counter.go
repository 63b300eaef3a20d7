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

// Package counter implements the in-process state of a counter: a value,
// a default step and a fixed history of positions.
//
// This package knows nothing about handles or C memory. All arithmetic is
// unsigned 32-bit and wraps around on overflow and underflow.
package counter

// Args are the construction arguments of a Counter.
type Args struct {
	Init uint32
	Step uint32
}

// Snapshot is a read-only copy of the state of a Counter.
type Snapshot struct {
	Value uint32
	Step  uint32
}

// Point2D is a position in the history of a Counter. The memory layout
// matches the counter_point2d C struct.
type Point2D struct {
	X float32
	Y float32
}

// DefaultPositions returns the position history assigned to every new Counter.
func DefaultPositions() []Point2D {
	return []Point2D{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 2, Y: 2},
	}
}

// Counter is the internal state machine behind an opaque counter handle.
// It is not safe for concurrent use.
type Counter struct {
	value     uint32
	step      uint32
	positions []Point2D
}

// New creates a Counter starting at args.Init that moves by args.Step.
func New(args Args) *Counter {
	return &Counter{
		value:     args.Init,
		step:      args.Step,
		positions: DefaultPositions(),
	}
}

func (c *Counter) Value() uint32 {
	return c.value
}

func (c *Counter) Step() uint32 {
	return c.step
}

func (c *Counter) Snapshot() Snapshot {
	return Snapshot{Value: c.value, Step: c.step}
}

// Increment adds the step to the value and returns the new value.
func (c *Counter) Increment() uint32 {
	return c.IncrementBy(c.step)
}

// Decrement subtracts the step from the value and returns the new value.
func (c *Counter) Decrement() uint32 {
	return c.DecrementBy(c.step)
}

func (c *Counter) IncrementBy(amount uint32) uint32 {
	c.value += amount
	return c.value
}

func (c *Counter) DecrementBy(amount uint32) uint32 {
	c.value -= amount
	return c.value
}

// IncrementByMany adds each amount to the value, in order, and returns
// the final value.
func (c *Counter) IncrementByMany(amounts []uint32) uint32 {
	for _, a := range amounts {
		c.value += a
	}
	return c.value
}

// DecrementByMany subtracts each amount from the value, in order, and
// returns the final value.
func (c *Counter) DecrementByMany(amounts []uint32) uint32 {
	for _, a := range amounts {
		c.value -= a
	}
	return c.value
}

// NumPositions returns the length of the position history.
func (c *Counter) NumPositions() int {
	return len(c.positions)
}

// Positions returns a copy of the position history.
func (c *Counter) Positions() []Point2D {
	res := make([]Point2D, len(c.positions))
	copy(res, c.positions)
	return res
}
