package command

import (
	"fmt"
	"strings"
)

// Segment positions of the resource id in a request path split on "/".
// The leading slash yields an empty first segment.
const (
	// resourceIDPosition addresses /channels/{id}/...
	resourceIDPosition = 2

	// resourceIDPositionOnAnotherResource addresses /channels/{channelId}/play/{id}.
	resourceIDPositionOnAnotherResource = 4
)

// Type classifies an ARI request by the resource it targets and whether
// the request creates that resource.
type Type int

// Command types. Unknown is the zero value.
const (
	Unknown Type = iota
	BridgeCreation
	Bridge
	ChannelCreation
	Channel
	PlaybackCreation
	Playback
	RecordingCreation
	Recording
	SnoopingCreation
	Snooping
)

// StrategyKind tags the shape of an extraction strategy.
type StrategyKind int

const (
	// StrategyUnavailable never attempts an extraction.
	StrategyUnavailable StrategyKind = iota
	// StrategyPathSegment reads a fixed segment of the request path.
	StrategyPathSegment
	// StrategyJSONPointer reads a field of a JSON body.
	StrategyJSONPointer
)

// Strategy describes where the resource id of a Type can be found.
// It is plain data; the extractors interpret it.
type Strategy struct {
	Kind    StrategyKind
	Index   int
	Pointer string

	// path is Pointer translated to gjson path syntax.
	path string
}

// Unavailable returns a strategy that never extracts anything.
func Unavailable() Strategy {
	return Strategy{Kind: StrategyUnavailable}
}

// PathSegment returns a strategy reading the path segment at index.
func PathSegment(index int) Strategy {
	return Strategy{Kind: StrategyPathSegment, Index: index}
}

// JSONPointer returns a strategy reading the body field addressed by an
// RFC 6901 pointer such as "/channelId".
func JSONPointer(pointer string) Strategy {
	return Strategy{Kind: StrategyJSONPointer, Pointer: pointer, path: pointerToPath(pointer)}
}

// String returns a human-readable description of the strategy.
func (s Strategy) String() string {
	switch s.Kind {
	case StrategyPathSegment:
		return fmt.Sprintf("segment[%d]", s.Index)
	case StrategyJSONPointer:
		return s.Pointer
	default:
		return "unavailable"
	}
}

type descriptor struct {
	name     string
	creation bool
	uri      Strategy
	body     Strategy
	response Strategy
}

// descriptors is the dispatch table from Type to its behavior.
var descriptors = [...]descriptor{
	Unknown: {
		name: "UNKNOWN",
		uri:  Unavailable(),
		body: Unavailable(),
	},
	BridgeCreation: {
		name:     "BRIDGE_CREATION",
		creation: true,
		uri:      PathSegment(resourceIDPosition),
		body:     JSONPointer("/bridgeId"),
		response: JSONPointer("/id"),
	},
	Bridge: {
		name: "BRIDGE",
		uri:  PathSegment(resourceIDPosition),
		body: JSONPointer("/bridgeId"),
	},
	ChannelCreation: {
		name:     "CHANNEL_CREATION",
		creation: true,
		uri:      PathSegment(resourceIDPosition),
		body:     JSONPointer("/channelId"),
		response: JSONPointer("/id"),
	},
	Channel: {
		name: "CHANNEL",
		uri:  PathSegment(resourceIDPosition),
		body: JSONPointer("/channelId"),
	},
	PlaybackCreation: {
		name:     "PLAYBACK_CREATION",
		creation: true,
		uri:      PathSegment(resourceIDPositionOnAnotherResource),
		body:     JSONPointer("/playbackId"),
		response: JSONPointer("/id"),
	},
	Playback: {
		name: "PLAYBACK",
		uri:  PathSegment(resourceIDPosition),
		body: JSONPointer("/playbackId"),
	},
	RecordingCreation: {
		name:     "RECORDING_CREATION",
		creation: true,
		uri:      Unavailable(),
		body:     JSONPointer("/name"),
		response: JSONPointer("/name"),
	},
	Recording: {
		name: "RECORDING",
		uri:  Unavailable(),
		body: JSONPointer("/name"),
	},
	SnoopingCreation: {
		name:     "SNOOPING_CREATION",
		creation: true,
		uri:      PathSegment(resourceIDPositionOnAnotherResource),
		body:     JSONPointer("/snoopId"),
		response: JSONPointer("/id"),
	},
	Snooping: {
		name: "SNOOPING",
		uri:  PathSegment(resourceIDPositionOnAnotherResource),
		body: JSONPointer("/snoopId"),
	},
}

// Types returns every command type in declaration order.
func Types() []Type {
	types := make([]Type, len(descriptors))
	for i := range descriptors {
		types[i] = Type(i)
	}
	return types
}

// ParseType parses the upper snake case name of a type, e.g. "CHANNEL".
func ParseType(name string) (Type, error) {
	for i := range descriptors {
		if strings.EqualFold(descriptors[i].name, name) {
			return Type(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown command type %q", name)
}

func (t Type) descriptor() descriptor {
	if t < 0 || int(t) >= len(descriptors) {
		return descriptors[Unknown]
	}
	return descriptors[t]
}

// String returns the upper snake case name of the type.
func (t Type) String() string {
	return t.descriptor().name
}

// IsResourceCreation reports whether the command may create a resource
// whose id is only known from the response body.
func (t Type) IsResourceCreation() bool {
	return t.descriptor().creation
}

// URIStrategy returns the strategy used to read the id from a path.
func (t Type) URIStrategy() Strategy {
	return t.descriptor().uri
}

// BodyStrategy returns the strategy used to read the id from a JSON body.
func (t Type) BodyStrategy() Strategy {
	return t.descriptor().body
}

// ResponseStrategy returns the strategy used to read the id of a created
// resource from the response body. Only creation types have one.
func (t Type) ResponseStrategy() Strategy {
	return t.descriptor().response
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
