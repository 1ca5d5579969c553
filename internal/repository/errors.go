package repository

import "errors"

// ErrUnsupportedDSN is returned when DATABASE_URL names a database this
// service cannot talk to.
var ErrUnsupportedDSN = errors.New("unsupported database url")
