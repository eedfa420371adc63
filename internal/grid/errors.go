package grid

import (
	"errors"
	"fmt"

	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// ErrNoCoverage is returned when a stack-formation search finds
// neighbours whose combined perpendicular extent does not exactly cover
// the target pane's extent.
var ErrNoCoverage = errors.New("no coverage")

// NoPaneByIDError is returned when an operation references a pane id not
// present in the registry.
type NoPaneByIDError struct {
	ID paneregistry.PaneID
}

func (e *NoPaneByIDError) Error() string {
	return fmt.Sprintf("no pane with id %s", e.ID)
}

// CantResizeFixedPanesError carries the ids of neighbour panes whose
// dimension along the resize axis is Fixed, blocking a directional
// resize.
type CantResizeFixedPanesError struct {
	IDs []paneregistry.PaneID
}

func (e *CantResizeFixedPanesError) Error() string {
	return fmt.Sprintf("cannot resize: %d neighbour pane(s) have a fixed dimension along this axis", len(e.IDs))
}
