// Package main runs the development API that the eightyseven CLI talks to
// during local work and tests. It serves password stores and password
// records under the API path.
//
// HTTP API
//
//	GET    /api/v1/{kind}/          List objects as {"meta": {...}, "objects": [...]}.
//	POST   /api/v1/{kind}/          Create; answers 201 with a Location header.
//	GET    /api/v1/{kind}/{id}/     Fetch one object.
//	PATCH  /api/v1/{kind}/{id}/     Merge the body into the object (202).
//	PUT    /api/v1/{kind}/{id}/     Replace the object (204).
//	DELETE /api/v1/{kind}/{id}/     Remove the object (204).
//	GET    /healthz                 Liveness probe.
//
// {kind} is passwordstore or passwordrecord.
//
// Behaviour
//
//   - -backend memory keeps all state in memory; -backend sqlite writes
//     devapi.db under -data.
//   - With -user set every request needs matching basic auth.
//   - Each request is written to the access log on stderr.
//   - The default listen address is :8087.
package main
