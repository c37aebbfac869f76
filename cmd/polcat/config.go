package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v2"
)

// YAMLConfig is a kong.ConfigurationLoader for YAML files whose keys are
// flag names, for example:
//
//	output: policies.csv
//	encoding: windows-1252
//	types: [policy, directive]
//	concurrency: 4
//
// Keys may use dashes or underscores.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]interface{}{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid YAML config: %w", err)
	}

	var resolver kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (interface{}, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok {
			return nil, nil
		}
		return configValue(v), nil
	}
	return resolver, nil
}

// configValue flattens a YAML value into the string form kong parses for
// flags. Lists become comma-separated.
func configValue(v interface{}) string {
	switch v := v.(type) {
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ",")
	default:
		return fmt.Sprint(v)
	}
}
