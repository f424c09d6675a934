package models

// MessageType tags messages on the live feed
type MessageType string

const (
	MessageTypeWorld MessageType = "world"
	MessageTypeFrame MessageType = "frame"
)

// Message is the envelope for everything sent over the websocket
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WorldNotice announces a newly published snapshot
type WorldNotice struct {
	ID       string `json:"id"`
	Seed     int64  `json:"seed"`
	Fallback bool   `json:"fallback"`
}

// Frame is one tick of the simulation as seen by a renderer
type Frame struct {
	Tick    uint64    `json:"tick"`
	WorldID string    `json:"world_id"`
	Cars    []CarPose `json:"cars"`
	Smoke   []Puff    `json:"smoke"`
	Wheel   float64   `json:"wheel"` // wheel rotation, fraction of a turn
}

// CarPose places one car in screen space
type CarPose struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Puff is one smoke particle
type Puff struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Alpha float64 `json:"alpha"`
	Shade int     `json:"shade"`
}
