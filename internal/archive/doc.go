// Package archive implements the mail archiving pipeline.
//
// A Service drives one invocation end to end: validate the request,
// obtain credentials, list the matching messages with pagination, then
// fetch each message, decode its body and store the resulting JSON record
// in object storage. Errors carry a Kind so the fail-fast-versus-isolate
// policy is explicit: anything before the per-message loop aborts the
// invocation, anything inside it only fails that message.
package archive
