// Copyright 2025 Magnus Pierre
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
	"fmt"
	"os"

	"go.uber.org/zap"

	"rosterkit/roster"
	"rosterkit/windows"
)

// sampleRoster is shown when no configuration file is given.
const sampleRoster = `name,Rank,Staff,Level
Ada,Recruit,True,12
Lee,Recruit,False,7
Mara,Captain,True,31
Ives,Sergeant,False,19
`

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := roster.DefaultConfig()
	cfg.OfflineText = sampleRoster
	if len(os.Args) > 1 {
		cfg, err = roster.LoadConfig(os.Args[1])
		if err != nil {
			logger.Fatal("failed to load configuration", zap.String("path", os.Args[1]), zap.Error(err))
		}
	}

	svc, err := roster.New(cfg, roster.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to create roster service", zap.Error(err))
	}

	browser := windows.CreateRosterBrowser(svc, logger)
	svc.Initialize(context.Background())
	browser.ShowAndRun()
}
