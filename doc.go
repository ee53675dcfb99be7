// Package welstory is a client for the Welstory cafeteria ordering service:
//
//   - Session handling (login, token refresh) with the bearer token attached
//     to every request
//   - Restaurant discovery, registration and per-date meal listing
//   - Per-menu-item nutrient retrieval
//   - Pluggable transport with a per-process fallback chain
//     (net/http client → raw socket HTTP client)
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Every operation takes a context.Context and returns an explicit error
//   - Safe concurrent use of a single *Client instance
//   - Extensibility via an injectable Transport strategy
//
// Typical usage:
//
//	client := welstory.New(
//	    welstory.WithDeviceID("my-device"),
//	    welstory.WithSimpleLogger(),
//	)
//	if _, err := client.Login(ctx, username, password); err != nil {
//	    // handle
//	}
//	restaurants, err := client.SearchRestaurant(ctx, "tower")
//
// The library avoids opinionated logging: provide a Logger (e.g. via
// WithSimpleLogger) and enable debug flags selectively (WithDebug /
// WithDebugConfig) for insight without noise.
package welstory
