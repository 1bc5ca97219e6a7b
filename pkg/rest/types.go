// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package rest

import "github.com/korrel8r/implindex/pkg/implementors"

// Capability is the rendering view of one capability.
type Capability struct {
	Capability implementors.Capability `json:"capability"`
	Entries    []implementors.Entry    `json:"entries"`
}

// Options are query parameters for capability requests.
type Options struct {
	// Exclude units from the response, usually the crate being rendered.
	Exclude []string `form:"exclude"`
}
