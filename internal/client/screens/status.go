package screens

import (
	"fmt"
	"io"
	"sync"
)

type Status int

const (
	Idle Status = iota
	Submitting
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

const MsgUnexpected = "An unexpected error occurred"

// form is the state shared by every screen.
type form struct {
	mu      sync.Mutex
	status  Status
	errMsg  string
	success string
}

func (f *form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ErrorMessage returns the message shown in the error banner, if any.
func (f *form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// SuccessMessage returns the message shown in the success banner, if any.
func (f *form) SuccessMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

func (f *form) begin() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = Submitting
	f.errMsg = ""
	f.success = ""
}

func (f *form) fail(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = Error
	f.errMsg = msg
	f.success = ""
}

func (f *form) succeed(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = Success
	f.errMsg = ""
	f.success = msg
}

func (f *form) renderBanner(w io.Writer) error {
	f.mu.Lock()
	status, errMsg, success := f.status, f.errMsg, f.success
	f.mu.Unlock()

	switch {
	case status == Submitting:
		_, err := fmt.Fprintln(w, "  ...working")
		return err
	case errMsg != "":
		_, err := fmt.Fprintf(w, "  ! %s\n", errMsg)
		return err
	case success != "":
		_, err := fmt.Fprintf(w, "  ✓ %s\n", success)
		return err
	}
	return nil
}
