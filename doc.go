// Package authclient tracks the client half of an authenticated session:
// a bearer token, the current user, and the streams that let an embedding
// application react when either changes. Token issuance, verification, and
// credential checks all belong to the host's API; this package only talks
// to them through two ports.
//
// Session lifecycle:
//   - Construct a Client with WithExchanger (login/register/logout against
//     the host API) and optionally WithResolver (restores a user from a
//     persisted id). Then call Activate exactly once at startup, replaying
//     whatever user id and token the host saved at shutdown. The
//     activation gate opens whether or not restoration succeeds, so
//     consumers waiting on RequiredUser or Check are never stuck behind a
//     failed restore.
//   - Attempt and Register exchange credentials for a user through the
//     exchanger port and store the result; Logout invalidates the session
//     server-side before clearing the user. Exchanger errors surface to
//     the caller unchanged, with no retries.
//
// Transports:
//   - Decorate/Observe implement the outbound-request contract for
//     net/http, and Transport wraps any http.RoundTripper with both.
//     UnaryClientInterceptor and StreamClientInterceptor do the same for
//     gRPC connections. A response Authorization header feeds the token
//     holder; a 401 (or Unauthenticated status) fires the unauthorized
//     side channel so the host can redirect to login.
//
// The token and user are independent axes: a token can exist without a
// user mid-restore, and a user can outlive a token, since transports only
// update the token from response headers.
package authclient
