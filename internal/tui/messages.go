package tui

// managerUpdatedMsg reports that a manager operation finished.
// The screen re-reads the manager snapshot when it arrives.
type managerUpdatedMsg struct {
	op  string
	err error
}

// confirmRequestMsg carries a pending delete confirmation to the screen
type confirmRequestMsg struct {
	req confirmRequest
}
