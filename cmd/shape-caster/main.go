// Package main provides the CLI entrypoint for shape-caster.
//
// shape-caster binds a loosely-typed YAML document to a strongly-typed
// target, rejecting any input that cannot be proven to conform:
//   - Decodes the document into a raw value tree
//   - Derives the target shape from a registered Go type
//   - Resolves the tree through the type-directed engine
//   - Dumps the typed result
package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"shape-caster/catalog"
	"shape-caster/examples/config"
	"shape-caster/parse"
)

func main() {
	file := flag.String("file", "", "YAML document to bind to the sample config type")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: shape-caster -file <document.yaml>")
		os.Exit(2)
	}

	if err := run(*file); err != nil {
		fmt.Fprintln(os.Stderr, "shape-caster:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	cat := catalog.NewReflect()

	factory, err := parse.New(cat, cat)
	if err != nil {
		return err
	}

	parser, err := factory.ParserFor(reflect.TypeOf((*config.Config)(nil)).Elem())
	if err != nil {
		return err
	}

	resolved, err := parser(doc)
	if err != nil {
		return err
	}

	spew.Dump(resolved)

	return nil
}

// loadDocument reads a YAML file into a raw value tree of nested
// map[string]any, []any and scalars.
func loadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document YAML: %w", err)
	}

	return doc, nil
}
