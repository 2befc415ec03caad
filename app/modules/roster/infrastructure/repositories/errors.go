package rosterdb

import "errors"

var ErrNotFound = errors.New("rosterdb: not found")
