// Package services defines the [Source] and [Destination] interfaces for the
// two cataloging services and implements them for MangaDex and ComicK.
//
// # MangaDex Implementation
//
// [MangaDexService] authenticates with a credential POST against /auth/login
// and holds the resulting session as an [oauth2.Token] (session token,
// refresh token, fifteen-minute expiry). The token is installed on the
// service instance and sent as a bearer header on every call; there are no
// package-level session globals.
//
// The followed list is read with offset pagination from /user/follows/manga
// until the reported total is reached. Results are deduplicated by manga
// UUID so overlap between pages cannot produce repeats. Localized title maps
// collapse to a single display title deterministically: en, then ja-ro,
// then the smallest language code.
//
// # ComicK Implementation
//
// [ComickService] uses a bearer token pasted from a logged-in browser
// session. Search (/search) is public; /user/library reads and writes
// require the token. An "already in library" answer from the add endpoint is
// an outcome, not an error: the destination's own idempotency governs
// correctness on re-runs.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrInvalidCredentials] : login rejected (4xx)
//   - [shared.ErrServiceUnavailable] : login endpoint unreachable (network, 5xx)
//   - [shared.ErrNotAuthenticated] : missing session or a 401 mid-run
//   - [shared.ErrFetchFailed] : followed-list pagination failure
//   - [shared.ErrAPIRequest] : any other HTTP failure
package services
