package xmlparse

import "errors"

var ErrParse = errors.New("parse error")
