// Package transport provides the HTTP client the resource model talks
// through.
//
// A Client is bound to a base URL (for example https://87.example.org/api/v1)
// and prepends it to every relative path it is given, for every verb, so
// callers only ever deal in resource paths such as /passwordrecord/42/.
//
// The client does not interpret status codes and never retries. It returns
// the raw *http.Response and leaves classification to the caller.
package transport
