package favorite

import "errors"

var ErrInvalidMovie = errors.New("invalid movie")
