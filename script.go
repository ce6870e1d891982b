package easel

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// gestureStep represents a single action in a gesture script.
type gestureStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []gestureStep `json:"steps"`
}

// GestureScript sequences injected pointer events across frames for automated
// interaction testing. Attach to a Canvas via SetGestureScript.
//
// Supported actions: "click", "dblclick", "press", "release", "move" (held),
// "hover" (unpressed), "drag" (fromX/fromY to toX/toY over frames), and
// "wait" (frames). Click, press, release, and move honor an optional
// "shift": true for selection toggling.
type GestureScript struct {
	steps     []gestureStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script and returns a GestureScript
// ready to be attached to a Canvas via SetGestureScript.
func LoadGestureScript(jsonData []byte) (*GestureScript, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, errors.Wrap(err, "easel: parse gesture script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("easel: gesture script has no steps")
	}
	return &GestureScript{steps: script.Steps}, nil
}

// SetGestureScript attaches a gesture script to the canvas. The script's step
// method is called from Canvas.Update before input processing each frame.
// Pass nil to detach.
func (c *Canvas) SetGestureScript(script *GestureScript) {
	c.script = script
}

// Done reports whether all steps in the gesture script have been executed.
func (s *GestureScript) Done() bool {
	return s.done
}

func stepMods(st gestureStep) KeyModifiers {
	if st.Shift {
		return ModShift
	}
	return 0
}

// step advances the script by one frame. Called from Canvas.Update.
func (s *GestureScript) step(c *Canvas) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injected) > 0 {
		return
	}
	// Count down wait frames.
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "click":
		c.InjectClickWith(st.X, st.Y, MouseButtonLeft, stepMods(st))
	case "dblclick":
		c.InjectClickWith(st.X, st.Y, MouseButtonLeft, stepMods(st))
		c.InjectClickWith(st.X, st.Y, MouseButtonLeft, stepMods(st))
	case "press":
		c.InjectPressWith(st.X, st.Y, MouseButtonLeft, stepMods(st))
	case "release":
		c.InjectReleaseWith(st.X, st.Y, MouseButtonLeft, stepMods(st))
	case "move":
		c.InjectMoveWith(st.X, st.Y, MouseButtonLeft, stepMods(st))
	case "hover":
		c.InjectHover(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(c.injected) == 0 {
		s.done = true
	}
}
