package sceneswap

import _ "embed"

// Version is the release of the sceneswap module.
//
//go:embed VERSION
var Version string
