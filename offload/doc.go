/*
Package offload runs bond inference and spatial indexing as asynchronous requests,
processed by a Worker in an execution context separate from the caller's.

Each Request may carry an id, which is copied to every response for that request, so
callers can match responses that arrive out of order. The worker processes one request at
a time, to completion. Requests with more than ProgressThreshold atoms get a progress
message (with value 0) before the work starts. Every request gets exactly one final
response, which is an error response if something went wrong.

The messages are JSON-serializable. Serve implements a JSON-lines transport, so a worker
can be driven through pipes by programs in other languages. Client implements the
calling side in Go, with a map of pending requests keyed by their ids.

Aromatic ring detection is not implemented: detectAromatic requests always get an
aromaticComplete response with an empty list of rings.
*/
package offload
