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

// Package config parses the library configuration.
//
// Configurations are YAML documents (JSON documents are accepted too)
// validated against the JSON schema returned by Schema. The configuration
// only affects diagnostics, never the behavior of counters.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/falcosecurity/counter-ffi-go/pkg/log"
)

// EnvVar is the environment variable read at library load time.
const EnvVar = "COUNTER_FFI_CONFIG"

const schema = `{
	"$schema": "http://json-schema.org/draft-04/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"logLevel": {
			"type": "string",
			"enum": ["off", "debug", "info", "warn", "error"],
			"description": "Minimum level of the library logs"
		},
		"logFormat": {
			"type": "string",
			"enum": ["text", "json"],
			"description": "Encoding of the library logs"
		},
		"logOutputs": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"description": "Sinks the library logs are written to"
		}
	}
}`

// Config is the library configuration.
type Config struct {
	LogLevel   string   `yaml:"logLevel"`
	LogFormat  string   `yaml:"logFormat"`
	LogOutputs []string `yaml:"logOutputs"`
}

// Default returns the configuration in use when none is provided.
func Default() Config {
	return Config{
		LogLevel:   log.OffLevel,
		LogFormat:  log.TextFormat,
		LogOutputs: []string{"stderr"},
	}
}

// Schema returns the JSON schema of the configuration.
func Schema() string {
	return schema
}

// Parse validates and decodes a configuration document. Fields missing
// from the document keep their default value. An empty document yields
// the default configuration.
func Parse(doc string) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(doc)) == 0 {
		return cfg, nil
	}

	var raw interface{}
	if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
		return cfg, fmt.Errorf("malformed config: %s", err.Error())
	}
	if raw == nil {
		return cfg, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(raw))
	if err != nil {
		return cfg, err
	}
	if !result.Valid() {
		// return first error
		return cfg, errors.New(result.Errors()[0].String())
	}

	if err := yaml.Unmarshal([]byte(doc), &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// FromEnv parses the configuration held by EnvVar, if any.
func FromEnv() (Config, error) {
	return Parse(os.Getenv(EnvVar))
}

// LogOptions translates the configuration into log.Option values.
func (c Config) LogOptions() []log.Option {
	return []log.Option{
		log.WithLevel(c.LogLevel),
		log.WithFormat(c.LogFormat),
		log.WithOutputPaths(c.LogOutputs...),
	}
}
