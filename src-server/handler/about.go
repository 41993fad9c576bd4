// This package contains the message command handlers.
//
// There should be 2 functions per command, one registering the command &
// its help information on the AppState (public), and one handling the
// message (private).
//
// When a command needs to wait for a button, use router.AskConfirmation or
// register a temporary handler with `appState.AddComponentHandler`, and
// remember to defer its removal.
//
// Only return errors when it's the backend's fault, nil if user's fault.
package handler
