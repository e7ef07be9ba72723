package main

import (
	"catalog-bot-go/render"
	"catalog-bot-go/surface"
)

// CallerInfo identifies who is invoking a command through the gateway.
type CallerInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// CommandRequest is the structured command payload for POST /command.
type CommandRequest struct {
	Verb   string            `json:"verb"`
	Caller CallerInfo        `json:"caller"`
	Args   map[string]string `json:"args,omitempty"`

	// Inputs pre-answers any follow-up prompts the command raises, in
	// order, so a stateless HTTP client can complete multi-step flows.
	Inputs []string `json:"inputs,omitempty"`
}

// MessageRequest is the free-text payload for POST /message. Line carries the
// full message including the command prefix.
type MessageRequest struct {
	Line   string     `json:"line"`
	Caller CallerInfo `json:"caller"`
	Inputs []string   `json:"inputs,omitempty"`
}

// PagePayload is one rendered page with its control state.
type PagePayload struct {
	Page     render.Page      `json:"page"`
	Controls surface.Controls `json:"controls"`
}

// CommandResponse collects everything one invocation emitted.
type CommandResponse struct {
	Replies []string      `json:"replies"`
	Pages   []PagePayload `json:"pages"`
	Acks    int           `json:"acks"`
}

// CacheDumpResponse is the /cache payload.
type CacheDumpResponse struct {
	NumberOfKeys int `json:"number_of_keys"`
	SizeInKB     int `json:"size_in_kb"`
}
