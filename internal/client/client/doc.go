// Package client contains the client-side building blocks for talking to
// the wardrobe backend.
//
// # Overview
//
// The package provides:
//  1. The backend contract (see the Client interface): session, login,
//     signup and logout; outfit list, upload, delete and update; outfit
//     suggestions; weekly plan creation and retrieval; outfit chat.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that authenticates
//     with the backend's session cookie, tags each request with an
//     X-Request-ID and reports 401s to an unauthorized handler.
//  3. A persistent cookie jar (see Jar) and local database bootstrap
//     (InitDatabase, RunMigrations) applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are *APIError values wrapping common.ErrUnauthorized or
// common.ErrRequestFailed; transport failures wrap common.ErrNetworkFailure
// or common.ErrNetworkTimeout. Match them with errors.Is.
//
// Concurrency & Contexts
//
// HTTPClient and Jar are safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
