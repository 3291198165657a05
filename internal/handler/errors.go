package handler

import "errors"

// errNoTransport means the server config has no HTTP address.
var errNoTransport = errors.New("store configuration enables no transport")
