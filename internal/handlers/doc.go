// Package handlers implements the HTTP API layer for handoff.
//
// Handlers translate requests into Controller calls and map typed errors onto
// HTTP status codes. They never wait for work to finish: a submission returns
// as soon as the item is queued, and results are fetched later by id.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Submission throttling (x/time/rate)                          │
//	│  - Request decoding                                             │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                    services.Controller                          │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is mounted with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
//	┌────────┬────────────┬───────────────────────────────────────────────┐
//	│ Method │ Endpoint   │ Description                                   │
//	├────────┼────────────┼───────────────────────────────────────────────┤
//	│ POST   │ /work      │ Submit an item, body {"kind", "contains"}     │
//	│ GET    │ /work/{id} │ Get an item, pending until it is delivered    │
//	│ GET    │ /status    │ Controller state and queue depths             │
//	└────────┴────────────┴───────────────────────────────────────────────┘
//
// An empty POST body submits a constrained item with the server's substring.
//
// # Error Mapping
//
//	┌───────────────────────────────┬──────────────────────────────┐
//	│ Condition                     │ HTTP Status                  │
//	├───────────────────────────────┼──────────────────────────────┤
//	│ Rate limit exceeded           │ 429 Too Many Requests        │
//	│ Malformed body, unknown kind  │ 400 Bad Request              │
//	│ Invalid id                    │ 400 Bad Request              │
//	│ UnsatisfiableWorkError        │ 422 Unprocessable Entity     │
//	│ UnverifiableWorkError         │ 422 Unprocessable Entity     │
//	│ WorkerStoppedError            │ 503 Service Unavailable      │
//	│ WorkNotFoundError             │ 404 Not Found                │
//	│ Anything else                 │ 500 Internal Server Error    │
//	└───────────────────────────────┴──────────────────────────────┘
package handlers
