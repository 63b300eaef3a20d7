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

package sdk

import (
	"github.com/falcosecurity/counter-ffi-go/pkg/counter"
)

// Functions that return a rc (e.g. configureCounterLibrary) return one
// of these values.
const (
	RcSuccess int32 = 0
	RcFailure int32 = 1
)

// Instance is the value referenced by a counter handle. It owns the
// counter and the C memory exposed to the caller.
type Instance struct {
	counter   *counter.Counter
	positions *Positions
}

// NewInstance creates a counter and the C mirror of its positions.
func NewInstance(args counter.Args) *Instance {
	c := counter.New(args)
	return &Instance{
		counter:   c,
		positions: NewPositions(c.Positions()),
	}
}

func (i *Instance) Counter() *counter.Counter {
	return i.counter
}

// Positions returns the C array holding the position history of the
// counter. The array never changes during the life of the Instance.
func (i *Instance) Positions() *Positions {
	return i.positions
}

// Destroy releases the C memory owned by the Instance.
func (i *Instance) Destroy() {
	i.positions.Free()
}
