package conversation

import (
	"errors"
	"fmt"

	"mandy/internal/gateway/catalog"
)

// ErrEmptySelection is returned when platform selection is confirmed
// with nothing picked.
var ErrEmptySelection = errors.New("pick at least one platform")

// ErrNotSelecting is returned when a confirm arrives outside the
// platforms stage. Stages only move forward; a stray confirm must not
// rewind a finished session or skip the earlier stages.
var ErrNotSelecting = errors.New("platform selection is not open")

// UnsupportedPlatformError reports a toggle on a coming-soon platform.
// Selection state is unchanged when this is returned.
type UnsupportedPlatformError struct {
	Platform catalog.Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s coming soon! Select from supported platforms.", e.Platform.Name)
}
