// Package resource models the server-owned objects of the EightySeven API.
//
// A Resource is either unsaved (no id) or persisted (id assigned by the
// server). Its URL is derived from its kind and id:
//
//	/passwordrecord/       unsaved
//	/passwordrecord/42/    persisted
//
// Save POSTs an unsaved resource and takes the new id from the Location
// header of the response; on a persisted resource it PATCHes the chosen
// fields. Delete removes the remote object and returns the instance to the
// unsaved state. Responses >= 500 fail with ErrRemoteServer, 4xx with
// ErrRemoteNotFound, and network failures with ErrTransport. A failed call
// never changes the instance.
//
// PasswordStore and PasswordRecord are the two concrete kinds; both embed
// *Resource and add typed accessors over its field map.
package resource
