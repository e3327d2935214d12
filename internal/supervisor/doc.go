// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package supervisor runs Stylist's long-lived services under a suture v4
supervisor tree.

# Tree

	stylist
	├── data-layer
	│   └── history-compactor      badger value-log GC
	├── messaging-layer
	│   └── analytics-sink         watermill NATS publisher (optional)
	└── api-layer
	    └── http-server

Each layer counts failures on its own, so a broker outage that keeps the
analytics sink restarting never touches the HTTP server. Supervisor events
are logged through sutureslog on the slog logger passed to
NewSupervisorTree.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewLifecycleService("history-compactor", compactor))
	tree.AddMessagingService(services.NewLifecycleService("analytics-sink", sink))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = <-tree.ServeBackground(ctx)

Zero TreeConfig fields take the DefaultTreeConfig values. Read the
ServeBackground channel once; it is not closed. After it yields, UnstoppedServiceReport lists services that ignored the shutdown
timeout.
*/
package supervisor
