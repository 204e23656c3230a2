package dto

import (
	"encoding/json"
	"errors"
	"strings"
)

// Message and event types exchanged with remote clients.
const (
	MessageButtonPress  = "buttonPress"
	EventStateUpdated   = "stateUpdated"
	EventActionExecuted = "actionExecuted"
)

// ErrMalformedPress is returned when a control-press payload cannot be used.
var ErrMalformedPress = errors.New("malformed control press")

// SetActiveRequest selects a profile and optionally one of its pages.
type SetActiveRequest struct {
	ProfileID string `json:"profileId"`
	PageID    string `json:"pageId,omitempty"`
}

// ControlPressEvent is a fire-and-forget press of a control by a remote
// client.
type ControlPressEvent struct {
	Type      string `json:"type"`
	ControlID string `json:"controlId"`
}

// ParseControlPress decodes a control-press payload. It fails on invalid
// JSON, a type other than buttonPress, or a blank control id.
func ParseControlPress(data []byte) (ControlPressEvent, error) {
	var ev ControlPressEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ControlPressEvent{}, errors.Join(ErrMalformedPress, err)
	}
	ev.ControlID = strings.TrimSpace(ev.ControlID)
	if ev.Type != MessageButtonPress || ev.ControlID == "" {
		return ControlPressEvent{}, ErrMalformedPress
	}
	return ev, nil
}

// Event is a sync event pushed to every connected listener.
type Event struct {
	Type            string `json:"type"`
	ActiveProfileID string `json:"activeProfileId,omitempty"`
	ActivePageID    string `json:"activePageId,omitempty"`
	ControlID       string `json:"controlId,omitempty"`
}

// StateUpdated announces a new active selection.
func StateUpdated(profileID, pageID string) Event {
	return Event{Type: EventStateUpdated, ActiveProfileID: profileID, ActivePageID: pageID}
}

// ActionExecuted announces that a control press was dispatched.
func ActionExecuted(controlID string) Event {
	return Event{Type: EventActionExecuted, ControlID: controlID}
}
