package memory

import (
	"github.com/tinoosan/atm/internal/service/registry"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ registry.Repo   = (*Store)(nil)
	_ registry.Writer = (*Store)(nil)
)
