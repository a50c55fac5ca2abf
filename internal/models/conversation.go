// ABOUTME: Conversation structures for the chat flow over one video
// ABOUTME: Turns, chat responses, and attributed source excerpts
package models

// ConversationTurn is one completed question/answer exchange.
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Source attributes part of an answer to a transcript excerpt.
type Source struct {
	Timestamp string `json:"timestamp"` // human readable, e.g. "30s - 60s"
	Text      string `json:"text"`
	URL       string `json:"url"` // deep link into the recording
}

// ChatResponse is the result of one chat turn.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
