package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one driven session.
type RunRecord struct {
	VersionedRecord
	ID            string  `json:"id"`
	World         string  `json:"world"`
	Agent         string  `json:"agent"`
	Seed          int64   `json:"seed"`
	Ticks         uint64  `json:"ticks"`
	Discoveries   int     `json:"discoveries"`
	StatesCharted int     `json:"states_charted"`
	Exploration   float64 `json:"exploration"`
	CreatedAtUTC  string  `json:"created_at_utc"`
}

// DiscoveryRecord journals one published finding. Kind distinguishes plain
// status text from structured insights.
type DiscoveryRecord struct {
	VersionedRecord
	ID      string `json:"id"`
	RunID   string `json:"run_id"`
	Step    uint64 `json:"step"`
	Kind    string `json:"kind"`
	Text    string `json:"text,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Content string `json:"content,omitempty"`
}

// TickStats is one periodic health sample of a running session.
type TickStats struct {
	Step          uint64  `json:"step"`
	Reward        float64 `json:"reward"`
	StatesCharted int     `json:"states_charted"`
	Exploration   float64 `json:"exploration"`
}
