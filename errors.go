// File: cogwheel/errors.go
package cogwheel

import "errors"

var (
	// ErrUnknownVariant indicates a variant with no registered codec.
	ErrUnknownVariant = errors.New("unknown or unregistered configuration variant")

	// ErrFileNotFound indicates the configuration file does not exist.
	ErrFileNotFound = errors.New("configuration file does not exist")

	// ErrFileIsDirectory indicates the path names a directory where a
	// file was expected.
	ErrFileIsDirectory = errors.New("configuration path is a directory, expected a file")

	// ErrCouldNotGuess indicates the variant could not be resolved from
	// the file extension and none was given explicitly.
	ErrCouldNotGuess = errors.New("could not guess configuration variant, specify it or check the file extension")

	// ErrNoConfiguration indicates a merge or build was attempted before
	// an establishing operation (UseString, UseFile, Make*) succeeded.
	ErrNoConfiguration = errors.New("no configuration specified, use Use* or Make* first")

	// ErrDecode indicates malformed or incomplete configuration text.
	ErrDecode = errors.New("configuration decode failed")

	// ErrEncode indicates a value could not be serialized.
	ErrEncode = errors.New("configuration encode failed")

	// ErrUnknownFieldPath indicates a merge field path that does not
	// resolve to a field of the configuration type.
	ErrUnknownFieldPath = errors.New("field path does not exist in configuration type")
)
