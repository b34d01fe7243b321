package delivery

// ErrorNoChannels is the orchestrator-level error reported when there is
// nothing configured to deliver to.
const ErrorNoChannels = "no_channels_configured"

// ChannelResult records one channel's outcome for a single request.
type ChannelResult struct {
	Channel   string `json:"channel"`
	Attempted bool   `json:"attempted"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Report aggregates every channel's outcome for a single request.
type Report struct {
	Ok      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Results []ChannelResult `json:"results"`
}

// ChannelOutcomes flattens the results into the response's channels map.
func (r Report) ChannelOutcomes() map[string]bool {
	out := make(map[string]bool, len(r.Results))
	for _, res := range r.Results {
		out[res.Channel] = res.Attempted && res.Success
	}
	return out
}

// ChannelErrors flattens the results into the response's errors map; channels
// without an error are present with a nil value.
func (r Report) ChannelErrors() map[string]*string {
	out := make(map[string]*string, len(r.Results))
	for _, res := range r.Results {
		if res.Error == "" {
			out[res.Channel] = nil
			continue
		}
		e := res.Error
		out[res.Channel] = &e
	}
	return out
}
