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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/vcgencmd/pkg/api"
	"github.com/NVIDIA/vcgencmd/pkg/server"
)

func (a *app) serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve readings over HTTP with Prometheus metrics",
		Description: `Runs vcgend in the foreground. See the api package for routes.

  vcgen serve --port 9090
  curl -s localhost:9090/v1/throttled`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "listen address, empty for all interfaces",
				Sources: cli.EnvVars(server.EnvAddress),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "listen port",
				Value:   8080,
				Sources: cli.EnvVars(server.EnvPort),
			},
			&cli.FloatFlag{
				Name:    "rate-limit",
				Usage:   "requests per second allowed on /v1 routes",
				Value:   20,
				Sources: cli.EnvVars(server.EnvRateLimit),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Serve(ctx, a.client(cmd), server.WithConfig(serverConfig(cmd)))
		},
	}
}

func serverConfig(cmd *cli.Command) *server.Config {
	cfg := server.NewConfig()
	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.IsSet("rate-limit") {
		cfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
	}
	return cfg
}
