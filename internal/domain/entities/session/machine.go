// Package session provides domain entities for per-editor-session UI state:
// the current selection and the drag/resize gesture state machine. Nothing
// here is persisted; a machine is created on editor open and discarded with
// the session.
package session

import "github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"

// Phase is the machine's current state. The machine is always in exactly
// one of the four phases.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSelected Phase = "selected"
	PhaseDragging Phase = "dragging"
	PhaseResizing Phase = "resizing"
)

// Handle names a resize handle on the selected element's outline.
type Handle string

const (
	HandleNorth     Handle = "n"
	HandleSouth     Handle = "s"
	HandleEast      Handle = "e"
	HandleWest      Handle = "w"
	HandleNorthEast Handle = "ne"
	HandleNorthWest Handle = "nw"
	HandleSouthEast Handle = "se"
	HandleSouthWest Handle = "sw"
)

// Handles lists every resize handle the renderer draws on a selected element.
func Handles() []Handle {
	return []Handle{
		HandleNorthWest, HandleNorth, HandleNorthEast,
		HandleWest, HandleEast,
		HandleSouthWest, HandleSouth, HandleSouthEast,
	}
}

// PointerEventType classifies a normalized pointer event.
type PointerEventType string

const (
	PointerDown  PointerEventType = "down"
	PointerMove  PointerEventType = "move"
	PointerUp    PointerEventType = "up"
	PointerLeave PointerEventType = "leave"
)

// PointerEvent is a platform-agnostic pointer event record. The HTTP
// adapter translates client events into this shape; the machine never sees
// DOM events directly.
type PointerEvent struct {
	Type PointerEventType `json:"type"`
	X    float64          `json:"x"`
	Y    float64          `json:"y"`

	// TargetID is the element under the pointer, empty for the canvas
	// background. Only meaningful on PointerDown.
	TargetID string `json:"targetId,omitempty"`

	// Handle is set when the pointer went down on a resize handle of the
	// selected element.
	Handle Handle `json:"handle,omitempty"`
}

// Machine tracks selection and the in-progress gesture for one editor
// session. It mutates the document only through UpdateElement, one complete
// geometry per move, so every intermediate frame is a valid element. An
// element deleted mid-gesture silently resets the machine to idle on the
// next event.
type Machine struct {
	phase      Phase
	selectedID string

	// Dragging: offset between pointer and element origin at gesture start,
	// so the element does not snap its origin to the pointer.
	offsetX float64
	offsetY float64

	// Resizing: handle grabbed, geometry and pointer position at gesture
	// start. Each move recomputes from these, never from the previous frame.
	handle Handle
	startG proposal.Geometry
	startX float64
	startY float64
}

// NewMachine returns a machine in the idle phase.
func NewMachine() *Machine {
	return &Machine{phase: PhaseIdle}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// SelectedID returns the selected element id, or "" when idle.
func (m *Machine) SelectedID() string {
	if m.phase == PhaseIdle {
		return ""
	}
	return m.selectedID
}

// Select re-targets the selection without an intermediate idle phase. Used
// after AddElement and Duplicate, where the new element becomes the
// selection target.
func (m *Machine) Select(id string) {
	if m.phase == PhaseDragging || m.phase == PhaseResizing {
		return
	}
	m.phase = PhaseSelected
	m.selectedID = id
}

// Reset returns the machine to idle, aborting any in-flight gesture. Fired
// on Escape and on template load.
func (m *Machine) Reset() {
	m.phase = PhaseIdle
	m.selectedID = ""
}

// ElementRemoved clears state referring to a deleted element. If a gesture
// was in flight on it, the gesture is dropped.
func (m *Machine) ElementRemoved(id string) {
	if m.selectedID == id {
		m.Reset()
	}
}

// HandleEvent feeds one pointer event through the machine, mutating doc as
// transitions require.
func (m *Machine) HandleEvent(doc *proposal.Document, ev PointerEvent) {
	switch ev.Type {
	case PointerDown:
		m.handleDown(doc, ev)
	case PointerMove:
		m.handleMove(doc, ev)
	case PointerUp, PointerLeave:
		m.handleEnd(doc)
	}
}

func (m *Machine) handleDown(doc *proposal.Document, ev PointerEvent) {
	// At most one active gesture: a new pointer-down while a gesture is in
	// flight is ignored until the current gesture resolves.
	if m.phase == PhaseDragging || m.phase == PhaseResizing {
		return
	}

	if ev.TargetID == "" {
		// Background click clears the selection.
		m.Reset()
		return
	}

	el, _, ok := doc.FindElement(ev.TargetID)
	if !ok {
		// Stale target, benign race with a delete.
		m.Reset()
		return
	}

	m.selectedID = el.ID

	if ev.Handle != "" {
		m.phase = PhaseResizing
		m.handle = ev.Handle
		m.startG = el.Geometry
		m.startX = ev.X
		m.startY = ev.Y
		return
	}

	m.phase = PhaseDragging
	m.offsetX = ev.X - el.Geometry.X
	m.offsetY = ev.Y - el.Geometry.Y
}

func (m *Machine) handleMove(doc *proposal.Document, ev PointerEvent) {
	switch m.phase {
	case PhaseDragging:
		if !doc.HasElement(m.selectedID) {
			m.Reset()
			return
		}
		x := ev.X - m.offsetX
		y := ev.Y - m.offsetY
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		_, _ = doc.UpdateElement(m.selectedID, proposal.ElementPatch{
			Geometry: &proposal.GeometryPatch{X: &x, Y: &y},
		})
	case PhaseResizing:
		if !doc.HasElement(m.selectedID) {
			m.Reset()
			return
		}
		g := resizeGeometry(m.startG, m.handle, ev.X-m.startX, ev.Y-m.startY)
		_, _ = doc.UpdateElement(m.selectedID, proposal.ElementPatch{
			Geometry: proposal.GeometryFrom(g),
		})
	}
}

// handleEnd commits a gesture. The last move already wrote the final
// geometry; release itself performs no model mutation.
func (m *Machine) handleEnd(doc *proposal.Document) {
	if m.phase != PhaseDragging && m.phase != PhaseResizing {
		return
	}
	if !doc.HasElement(m.selectedID) {
		m.Reset()
		return
	}
	m.phase = PhaseSelected
}

// resizeGeometry applies a pointer delta to the gesture's starting geometry
// along the handle's axes, clamped so the box never collapses below
// MinElementSize and never leaves the non-negative quadrant. Edges opposite
// the handle stay pinned.
func resizeGeometry(start proposal.Geometry, handle Handle, dx, dy float64) proposal.Geometry {
	g := start

	switch handle {
	case HandleEast, HandleNorthEast, HandleSouthEast:
		g.Width = start.Width + dx
	case HandleWest, HandleNorthWest, HandleSouthWest:
		g.Width = start.Width - dx
		g.X = start.X + dx
	}

	switch handle {
	case HandleSouth, HandleSouthEast, HandleSouthWest:
		g.Height = start.Height + dy
	case HandleNorth, HandleNorthEast, HandleNorthWest:
		g.Height = start.Height - dy
		g.Y = start.Y + dy
	}

	// Keep the anchored edge pinned when the minimum size clamp engages.
	if g.Width < proposal.MinElementSize {
		if g.X != start.X {
			g.X = start.X + start.Width - proposal.MinElementSize
		}
		g.Width = proposal.MinElementSize
	}
	if g.Height < proposal.MinElementSize {
		if g.Y != start.Y {
			g.Y = start.Y + start.Height - proposal.MinElementSize
		}
		g.Height = proposal.MinElementSize
	}

	return proposal.ClampGeometry(g)
}
