// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package services adapts Stylist components to suture.Service.

HTTPServerService wraps an *http.Server. Serve returns the listen error if
the server cannot start and shuts it down gracefully when the supervisor
cancels its context.

LifecycleService wraps anything with Start, Stop and IsRunning, such as
the history compactor or the analytics sink. A failed Start is returned to
the supervisor, which restarts the service with backoff.
*/
package services
