// Package ackstub is a stand-in for a webhook receiver such as a chat bot API.
// Integration tests point their notifier at it once a service name has been
// resolved, then inspect what was sent.
//
// Routes:
//   - POST /* records the raw body in a single slot and answers 200 {"ok":true}.
//     No validation is performed and no error status is ever returned.
//   - GET /_stub/last returns the last recorded body (204 when empty).
//   - GET /healthz and GET /metrics for probes and Prometheus scraping.
//
// Requests are not logged; only start and stop are.
package ackstub
