// Package devapi implements a local stand-in for the EightySeven HTTP API,
// used by cmd/devserver during development and by tests.
//
// HTTP API (relative to the API path, /api/v1 by default)
//
//	GET    /{kind}/          List objects as {"meta": {...}, "objects": [...]}.
//	POST   /{kind}/          Create an object. Answers 201 with a Location
//	                         header pointing at /{kind}/{id}/.
//	GET    /{kind}/{id}/     Return one object.
//	PATCH  /{kind}/{id}/     Merge the given fields into the object (202).
//	PUT    /{kind}/{id}/     Replace the object's fields (204).
//	DELETE /{kind}/{id}/     Remove the object (204).
//
// Known kinds are passwordstore and passwordrecord; anything else is 404.
// Every object is rendered with its numeric "id" and its "resource_uri".
// When credentials are configured, requests must carry matching basic auth.
package devapi
