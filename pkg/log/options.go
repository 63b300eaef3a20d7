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

package log

// Config is a type manipulated by Option functions.
type Config struct {
	// Level is the minimum level to log at, can be off, debug, info, warn or error.
	Level string
	// Format is the format to write logs in, can be json or text.
	Format string
	// OutputPaths is a list of zap sinks to write log outputs to.
	OutputPaths []string
}

// Option is a function that mutates Config.
type Option func(*Config)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

const (
	OffLevel   = "off"
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// WithLevel sets the Config.Level property.
func WithLevel(level string) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithFormat sets the Config.Format property, can be "json" or "text".
func WithFormat(format string) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithOutputPaths appends to the Config.OutputPaths property. Valid inputs
// include file paths and standard streams.
func WithOutputPaths(paths ...string) Option {
	return func(c *Config) {
		for _, path := range paths {
			if path != "" {
				c.OutputPaths = append(c.OutputPaths, path)
			}
		}
	}
}
