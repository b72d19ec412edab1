package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrEmptyFile = errors.New("File is empty")
var ErrValidation = errors.New("Validation failed")
