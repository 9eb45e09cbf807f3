package block

// PlacementError is returned when a block cannot be placed. Its value is the
// failure code reported to the host.
type PlacementError string

const (
	// ErrNotReplaceable is returned if the block in the target cell may not be
	// replaced.
	ErrNotReplaceable PlacementError = "notreplaceable"
	// ErrRequireAttachable is returned if the support block does not allow the
	// block to attach to it.
	ErrRequireAttachable PlacementError = "requireattachable"
)

// Error ...
func (e PlacementError) Error() string {
	return "place block: " + string(e)
}

// Code returns the failure code of the error.
func (e PlacementError) Code() string {
	return string(e)
}
