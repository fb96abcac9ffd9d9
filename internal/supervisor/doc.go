// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package supervisor runs Sifter's long-lived services under a suture v4 tree.

	RootSupervisor ("sifter")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── ConfigReloadService (when a config file is in use)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing service is restarted by its own layer with backoff; the other
layer keeps running. Supervisor events are logged through sutureslog, fed
by the zerolog-backed slog handler from the logging package.

Training and scoring are request driven, so there is no scheduler here.
*/
package supervisor
