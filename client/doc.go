/*

Package client implements an asynchronous CQL binary protocol v4 client connection: frame-level I/O, stream-id
multiplexing and negotiation.

The main type is Dialer, which establishes CqlClientConnection instances to a single CQL-compatible endpoint.
CqlServer and CqlServerConnection provide a minimal server stub used to exercise the client against test doubles.

*/
package client
