package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrProgramRead = errors.New(f("program read"))
)
