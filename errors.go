package termselect

import "errors"

// ErrNoSelection is returned when the session has no active selection.
var ErrNoSelection = errors.New("No text selected")

// ErrRowOutOfRange is returned by a Capture asked for rows it never saw.
var ErrRowOutOfRange = errors.New("row outside captured range")

// FetchError reports that the host could not supply the contents of the selected rows.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "Failed to get contents: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
