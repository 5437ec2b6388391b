// Package stacio is the catalog transport: it reads and writes STAC
// documents by location string, routing s3:// locations through an
// S3-compatible object store and everything else through the local
// filesystem.
//
// The adapter is registered process-wide as the default transport
// (last registration wins) and is picked up by every catalog access
// the handlers perform. The object-store client is built once at
// construction from explicit credentials and is immutable afterwards;
// reconfiguration means constructing a new adapter.
package stacio
