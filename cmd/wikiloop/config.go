package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads flag values from a YAML document. Keys are flag names,
// written with either dashes or underscores:
//
//	timeout: 5s
//	user_agent: my-bot/1.0
//	log-format: json
//	addr: ":8080"
//
// Flags given on the command line or through the environment take precedence.
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			v, ok := values[key]
			if !ok || v == nil {
				continue
			}
			return fmt.Sprint(v), nil
		}
		return nil, nil
	}), nil
}
