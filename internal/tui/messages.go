package tui

// actionDoneMsg reports a finished vault mutation.
type actionDoneMsg struct {
	status string
}

// errorMsg carries a failed vault mutation.
type errorMsg struct {
	err     error
	context string
}
