/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	p.root = filepath.Dir(path)
	return p, nil
}

// Parse decodes a project from YAML. Relative document paths are left
// relative to the working directory.
func Parse(data []byte) (*Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Project) validate() error {
	if strings.TrimSpace(p.File) == "" {
		return errors.New("file is required")
	}
	seen := make(map[string]struct{}, len(p.Criteria))
	for i, c := range p.Criteria {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("criteria[%d]: name is required", i)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("criteria[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Save writes the project to path, replacing any existing file atomically.
func (p *Project) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".textassert-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting project mode: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing project: %w", err)
	}
	return nil
}
