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
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/falcosecurity/counter-ffi-go/pkg/config"
	"github.com/falcosecurity/counter-ffi-go/pkg/log"
)

func init() {
	cfg, err := config.FromEnv()
	if err == nil {
		err = Configure(cfg)
	}
	if err != nil {
		SetLastError(fmt.Errorf("%s: %w", config.EnvVar, err))
	}
}

var logOutputs struct {
	m     sync.Mutex
	close func()
}

// Configure applies a library configuration. The outputs of the logger
// installed by the previous call are flushed and closed.
func Configure(cfg config.Config) error {
	lg, closeOutputs, err := log.Open(cfg.LogOptions()...)
	if err != nil {
		return err
	}

	logOutputs.m.Lock()
	prev := log.L()
	log.Replace(lg)
	_ = prev.Sync()
	if logOutputs.close != nil {
		logOutputs.close()
	}
	logOutputs.close = closeOutputs
	logOutputs.m.Unlock()

	log.L().Debug("library configured",
		zap.String("logLevel", cfg.LogLevel),
		zap.String("logFormat", cfg.LogFormat),
		zap.Strings("logOutputs", cfg.LogOutputs))
	return nil
}

// ConfigureString parses and applies a configuration document, recording
// the failure as the last error if any.
func ConfigureString(doc string) int32 {
	cfg, err := config.Parse(doc)
	if err == nil {
		err = Configure(cfg)
	}
	if err != nil {
		SetLastError(fmt.Errorf("invalid config: %w", err))
		return RcFailure
	}
	SetLastError(nil)
	return RcSuccess
}
