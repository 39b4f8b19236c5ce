package mstrieconfig

import "golang.org/x/xerrors"

var (
	// ErrOpenFile is returned when the configuration file cannot be opened.
	ErrOpenFile = xerrors.New("could not open configuration file")
	// ErrGroupMissing is returned when a requested configuration group does not exist.
	ErrGroupMissing = xerrors.New("could not find configuration group")
	// ErrParameterMissing is returned when a requested configuration parameter does not exist.
	ErrParameterMissing = xerrors.New("could not find configuration parameter")
	// ErrTypeConversion is returned when a parameter value cannot be converted to the requested type.
	ErrTypeConversion = xerrors.New("could not convert configuration value")
	// ErrMalformedLine is returned when a non-group, non-blank, non-comment line is not "name = \"value\"".
	ErrMalformedLine = xerrors.New("malformed configuration line")
)
