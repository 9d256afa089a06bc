// Package protodict implements the protobuf lemmer dictionary format.
//
// The blob is a serialized TLemmerDict message (see lemmer_dict.proto). It is
// decoded once with the protowire primitives; byte fields keep pointing into
// the input, so the input must stay alive while the Dict is in use.
package protodict
