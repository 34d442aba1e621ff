// Package command classifies Asterisk REST Interface (ARI) requests and
// extracts the resource identifier used to correlate a command with its
// asynchronous responses and events.
//
// # Classification
//
// Request paths are matched against a fixed, ordered table of path
// templates such as /channels/{channelId}/play. The first matching
// template decides the command Type; a path that matches nothing is
// classified as Unknown.
//
//	t := command.Classify("/channels/abc123/mute") // command.Channel
//
// # Extraction
//
// Every Type carries two extraction strategies: one reading a path
// segment and one reading a JSON field of a request or response body.
// Both return a three-state Result:
//
//   - NotApplicable: the Type has no strategy for this source
//   - Failure: the strategy ran and could not produce an identifier
//   - Success: a non-empty identifier
//
// Resolve applies the URI strategy first and falls back to the body:
//
//	res := command.Resolve(t, path, body)
//	if id, ok := res.ID(); ok {
//	    // correlate using id
//	}
//
// All tables are built once at package initialization and never mutated,
// so every function in this package is safe for concurrent use.
package command
