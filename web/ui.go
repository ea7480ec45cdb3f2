// Package web carries the embedded browser chat widget.
package web

import (
	_ "embed"
)

//go:embed index.html
var IndexHTML []byte
