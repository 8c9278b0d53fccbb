package sessions

import "errors"

var ErrStateNotFound = errors.New("oauth state not found")
