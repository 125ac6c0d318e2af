package llm

// Stream event types written by the NDJSON generate endpoint.
const (
	EventResult = "result"
	EventDone   = "done"
)

// StreamEvent is a single line of the NDJSON generate stream. One "result"
// event is written per image as it finishes, followed by a final "done" event.
type StreamEvent struct {
	Type string `json:"type"`

	// Per-image fields (type=result)
	Index int    `json:"index,omitempty"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`

	// Batch summary (type=done)
	Total  int `json:"total,omitempty"`
	Failed int `json:"failed,omitempty"`
}
