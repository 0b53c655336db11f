package health

import "errors"

var errNoDatabase = errors.New("database client not configured")
