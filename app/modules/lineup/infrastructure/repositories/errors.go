package lineupdb

import "errors"

var ErrNotFound = errors.New("lineupdb: not found")
