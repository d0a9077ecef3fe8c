// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
)

// Environment variables read by NewConfig.
const (
	EnvPort            = "PORT"
	EnvAddress         = "VCGEND_ADDRESS"
	EnvRateLimit       = "VCGEND_RATE_LIMIT"
	EnvRateLimitBurst  = "VCGEND_RATE_LIMIT_BURST"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Identity reported when no name or version is configured.
const (
	defaultName    = "server"
	defaultVersion = "undefined"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with defaults overridden from the environment.
// Name and Version are left empty so WithConfig keeps an identity set by
// earlier options; New fills them in when still empty.
func NewConfig() *Config {
	return parseConfig()
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

func parseConfig() *Config {
	cfg := &Config{
		Address: "",
		Port:    8080,
		// vcgencmd serializes on the firmware mailbox; keep request rates modest.
		RateLimit:         20,
		RateLimitBurst:    40,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil && port > 0 && port < 65536 {
			cfg.Port = port
		}
	}

	if addr := os.Getenv(EnvAddress); addr != "" {
		cfg.Address = addr
	}

	if limitStr := os.Getenv(EnvRateLimit); limitStr != "" {
		if limit, err := strconv.ParseFloat(limitStr, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		}
	}

	if burstStr := os.Getenv(EnvRateLimitBurst); burstStr != "" {
		if burst, err := strconv.Atoi(burstStr); err == nil && burst > 0 {
			cfg.RateLimitBurst = burst
		}
	}

	// Allow the shutdown timeout to match the service manager's stop timeout
	if shutdownStr := os.Getenv(EnvShutdownTimeout); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}
