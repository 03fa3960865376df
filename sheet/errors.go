package sheet

import "fmt"

// LoadError reports an input that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s can't be loaded: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// WrongFrameCountError is returned when converting a document that does not
// hold exactly one frame.
type WrongFrameCountError struct {
	Path  string
	Found int
}

func (e *WrongFrameCountError) Error() string {
	return fmt.Sprintf("convert only supports a single frame, %d frames found in %s", e.Found, e.Path)
}

type TagMissingError struct {
	Path string
	Tag  string
}

func (e *TagMissingError) Error() string {
	return fmt.Sprintf("%s doesn't exist in image %s", e.Tag, e.Path)
}

// InsufficientFramesError is returned when a tag is shorter than the number
// of frames requested from it.
type InsufficientFramesError struct {
	Path string
	Tag  string
	Have int
	Need int
}

func (e *InsufficientFramesError) Error() string {
	return fmt.Sprintf("tag %s in file %s doesn't contain enough frames, it has %d but we need %d",
		e.Tag, e.Path, e.Have, e.Need)
}

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot save image to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// SheetTooLargeError is returned when the sheet's pixel size or buffer size
// does not fit in an int.
type SheetTooLargeError struct {
	Path                    string
	Cols, Rows              int
	FrameWidth, FrameHeight int
}

func (e *SheetTooLargeError) Error() string {
	return fmt.Sprintf("sheet of %dx%d frames of %dx%d from %s is too large",
		e.Cols, e.Rows, e.FrameWidth, e.FrameHeight, e.Path)
}
