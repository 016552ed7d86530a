package ports

import "errors"

// ErrUnsupportedFileType is returned by a CodecFactory when no adapter has
// registered for the requested FileType.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// CodecFactory is the port for looking up the reader/writer pair
// registered for a FileType.
type CodecFactory interface {
	// Reader returns the TableReader registered for t, or an error if
	// unsupported.
	Reader(t FileType) (TableReader, error)
	// Writer returns the TableWriter registered for t, or an error if
	// unsupported.
	Writer(t FileType) (TableWriter, error)
}
