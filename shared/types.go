// types.go - Shared wire types between the game client and the gesture server
package shared

import "strings"

// Paths served by the gesture server
const (
	PathGetGesture = "/get_gesture"
	PathGesture    = "/gesture"
	PathWS         = "/ws"
	PathMetrics    = "/metrics"
)

// Gesture is a classified hand-pose label
type Gesture string

const (
	GestureNone  Gesture = "none"
	GestureLeft  Gesture = "left"
	GestureRight Gesture = "right"
	GestureUp    Gesture = "up"
	GestureDown  Gesture = "down"
)

// Known reports whether g is one of the five labels the recognizer emits.
func (g Gesture) Known() bool {
	switch g {
	case GestureNone, GestureLeft, GestureRight, GestureUp, GestureDown:
		return true
	}
	return false
}

// Label is the uppercased form shown to the player.
func (g Gesture) Label() string { return strings.ToUpper(string(g)) }

// GestureReply is the body of GET /get_gesture and POST /gesture.
// Gesture is a pointer so a body without the field can be told apart from "".
type GestureReply struct {
	Gesture *string `json:"gesture"`
}

// NewGestureReply wraps g for encoding.
func NewGestureReply(g Gesture) GestureReply {
	s := string(g)
	return GestureReply{Gesture: &s}
}

// ParseGesture normalizes a raw label (trims space, lowercases) and reports
// whether it is known.
func ParseGesture(raw string) (Gesture, bool) {
	g := Gesture(strings.ToLower(strings.TrimSpace(raw)))
	return g, g.Known()
}
