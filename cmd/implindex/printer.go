// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/korrel8r/implindex/internal/pkg/must"
	"sigs.k8s.io/yaml"
)

type printer interface {
	Print(any) // Print a single item.
}

type jsonPrinter struct{ *json.Encoder }

func (p *jsonPrinter) Print(v any) { must.Must(p.Encode(v)) }

type yamlPrinter struct{ io.Writer }

func (p *yamlPrinter) Print(v any) {
	b := must.Must1(yaml.Marshal(v))
	_ = must.Must1(p.Write(b))
}

func newPrinter(w io.Writer) printer {
	switch outputFlag.String() {
	case "json":
		return &jsonPrinter{Encoder: json.NewEncoder(w)}

	case "json-pretty":
		p := &jsonPrinter{Encoder: json.NewEncoder(w)}
		p.SetIndent("", "  ")
		return p

	case "yaml":
		return &yamlPrinter{Writer: w}

	default:
		must.Must(fmt.Errorf("invalid output type: %v", outputFlag))
		return nil
	}
}
