// Package proto defines the wire contract between the tracker client and
// server: request/response messages, the TrackerService descriptor, a client
// stub and the JSON codec they are exchanged with.
//
// Messages are plain Go structs. Timestamps travel as timestamppb.Timestamp
// and optional scalars as wrapperspb values so that "absent" stays distinct
// from zero. Every call is sent with the "json" content subtype, which
// selects Codec on both ends.
//
// Names follow protoc-gen-go-grpc output, so generated code can replace
// codec.go, client.go and service.go without touching callers.
package proto
