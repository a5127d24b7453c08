package modeq

import "github.com/blang/semver/v4"

// Version of the library.
var Version = semver.MustParse("0.1.0")
