package types

import "errors"

var (
	ErrNoInput           = errors.New("no export file given. Use --input or set input in the config file")
	ErrUnsupportedSource = errors.New("unsupported export source")
	ErrNoSheets          = errors.New("workbook has no sheets")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrSessionChanged    = errors.New("report session was reconfigured during the import")
	ErrLocationForbidden = errors.New("location is outside the allowed import locations")
)
