package xmltoken

import "errors"

var ErrMalformed = errors.New("malformed markup")
