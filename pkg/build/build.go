// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package build contains build information for the implindex module.
package build

import (
	_ "embed"
)

//go:embed version.txt
var Version string
