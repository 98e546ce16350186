package equations

import (
	"strings"
	"testing"
)

func TestTargetsGenerate(t *testing.T) {
	for _, target := range Targets() {
		t.Run(target.Name, func(t *testing.T) {
			src, err := target.Generate()
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if !strings.HasPrefix(src, "// Code generated by vagen. DO NOT EDIT.\n") {
				t.Fatal("generated file missing header")
			}
		})
	}
}

func TestTargetsDeterministic(t *testing.T) {
	for _, target := range Targets() {
		t.Run(target.Name, func(t *testing.T) {
			first, err := target.Generate()
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			second, err := target.Generate()
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if first != second {
				t.Fatal("repeated generation produced different bytes")
			}
		})
	}
}

func TestTargetsUnique(t *testing.T) {
	names := make(map[string]bool)
	paths := make(map[string]bool)

	for _, target := range Targets() {
		if names[target.Name] || paths[target.Path] {
			t.Fatalf("duplicate target %q (%s)", target.Name, target.Path)
		}

		names[target.Name] = true
		paths[target.Path] = true
	}
}
