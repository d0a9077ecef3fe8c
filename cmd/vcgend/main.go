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

package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/joho/godotenv"

	"github.com/NVIDIA/vcgencmd/pkg/api"
	"github.com/NVIDIA/vcgencmd/pkg/logging"
	"github.com/NVIDIA/vcgencmd/pkg/server"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

// envFileVar names an env file to load instead of ./.env.
const envFileVar = "VCGEND_ENV_FILE"

func main() {
	if err := loadEnv(); err != nil {
		log.Fatalf("failed to load env file: %v", err)
	}

	logging.SetDefaultStructuredLogger("vcgend", api.Version())

	client := vcgencmd.NewClient(vcgencmd.WithConfig(vcgencmd.ConfigFromEnv()))

	err := api.Serve(context.Background(), client, server.WithOnReady(func() {
		notify(daemon.SdNotifyReady)
	}))
	notify(daemon.SdNotifyStopping)
	if err != nil {
		os.Exit(1)
	}
}

// loadEnv loads VCGEND_ENV_FILE, or ./.env when present. Variables already
// set in the environment win.
func loadEnv() error {
	if path := os.Getenv(envFileVar); path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// notify reports state to systemd. Outside a Type=notify unit it is a no-op.
func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Warn("failed to notify systemd", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("notified systemd", "state", state)
	}
}
