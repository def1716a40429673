package poet

import "errors"

var ErrWordNotFound = errors.New("word not found in dictionary")
var ErrPoemNotFound = errors.New("poem not found")
var ErrReadOnly = errors.New("modifications are not allowed")
var ErrMalformedEntry = errors.New("malformed lexicon entry")
var ErrUnknownForm = errors.New("unknown verse form")
