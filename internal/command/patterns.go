package command

// Entry maps a path template to the command type of matching requests.
type Entry struct {
	Template string
	Type     Type
}

// DefaultEntries returns a copy of the built-in ARI path table. Entries
// are matched in order; literal templates precede placeholder templates
// of the same shape.
func DefaultEntries() []Entry {
	entries := make([]Entry, len(defaultEntries))
	copy(entries, defaultEntries)
	return entries
}

var defaultEntries = []Entry{
	// channels
	{"/channels", ChannelCreation},
	{"/channels/create", ChannelCreation},
	{"/channels/externalMedia", Channel},
	{"/channels/{channelId}", ChannelCreation},
	{"/channels/{channelId}/continue", Channel},
	{"/channels/{channelId}/move", Channel},
	{"/channels/{channelId}/redirect", Channel},
	{"/channels/{channelId}/answer", Channel},
	{"/channels/{channelId}/ring", Channel},
	{"/channels/{channelId}/dtmf", Channel},
	{"/channels/{channelId}/mute", Channel},
	{"/channels/{channelId}/hold", Channel},
	{"/channels/{channelId}/moh", Channel},
	{"/channels/{channelId}/silence", Channel},
	{"/channels/{channelId}/play", PlaybackCreation},
	{"/channels/{channelId}/play/{playbackId}", PlaybackCreation},
	{"/channels/{channelId}/record", RecordingCreation},
	{"/channels/{channelId}/variable", Channel},
	{"/channels/{channelId}/snoop", SnoopingCreation},
	{"/channels/{channelId}/snoop/{snoopId}", SnoopingCreation},
	{"/channels/{channelId}/dial", Channel},
	{"/channels/{channelId}/rtp_statistics", Channel},

	// bridges
	{"/bridges", BridgeCreation},
	{"/bridges/{bridgeId}", BridgeCreation},
	{"/bridges/{bridgeId}/addChannel", Bridge},
	{"/bridges/{bridgeId}/removeChannel", Bridge},
	{"/bridges/{bridgeId}/videoSource/{channelId}", Bridge},
	{"/bridges/{bridgeId}/videoSource", Bridge},
	{"/bridges/{bridgeId}/moh", Bridge},
	{"/bridges/{bridgeId}/play", PlaybackCreation},
	{"/bridges/{bridgeId}/play/{playbackId}", PlaybackCreation},
	{"/bridges/{bridgeId}/record", RecordingCreation},

	// playbacks
	{"/playbacks/{playbackId}", Playback},
	{"/playbacks/{playbackId}/control", Playback},

	// recordings
	{"/recordings/stored", Recording},
	{"/recordings/stored/{recordingName}", Recording},
	{"/recordings/stored/{recordingName}/file", Recording},
	{"/recordings/stored/{recordingName}/copy", Recording},
	{"/recordings/live/{recordingName}", Recording},
	{"/recordings/live/{recordingName}/stop", Recording},
	{"/recordings/live/{recordingName}/pause", Recording},
	{"/recordings/live/{recordingName}/mute", Recording},
}

// idlessCollections are creation endpoints whose path carries no
// resource id, so the id is only available from a body.
var idlessCollections = map[string]struct{}{
	"/channels":               {},
	"/channels/create":        {},
	"/channels/externalMedia": {},
	"/bridges":                {},
}
