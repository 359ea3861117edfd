package domain

import "time"

// EventType names a change published by the engines.
type EventType string

const (
	EventTick         EventType = "tick"
	EventStarted      EventType = "started"
	EventPaused       EventType = "paused"
	EventReset        EventType = "reset"
	EventModeChanged  EventType = "mode_changed"
	EventCompleted    EventType = "completed"
	EventPhaseChanged EventType = "phase_changed"
	EventCycleChanged EventType = "cycle_changed"
	EventMessage      EventType = "message"
	EventTimers       EventType = "timers"
	EventTimerDone    EventType = "timer_done"
)

// Event is delivered to engine subscribers.
type Event struct {
	Type    EventType    `json:"type"`
	At      time.Time    `json:"at"`
	Session SessionState `json:"session"`
	View    View         `json:"view"`
	Timers  []MultiTimer `json:"timers,omitempty"`
	Timer   *MultiTimer  `json:"timer,omitempty"`
}

// CurrentState is the read model served to the CLI and the MCP server.
type CurrentState struct {
	Session    SessionState    `json:"session"`
	View       View            `json:"view"`
	ActiveTask *TaskQueueItem  `json:"active_task,omitempty"`
	Queue      []TaskQueueItem `json:"queue"`
	Timers     []MultiTimer    `json:"timers"`
	Stats      Stats           `json:"stats"`
	Goals      Goals           `json:"goals"`
	Flow       FlowSettings    `json:"flow"`
	Daily      int             `json:"daily_progress"`
	Weekly     int             `json:"weekly_progress"`
}
