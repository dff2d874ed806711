package fixes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// fixApplicationYAML relocates spring.jackson.read and
// spring.jackson.write subtrees under spring.jackson.json
// in application.yml. The file is decoded, rewritten as
// a nested map, and re-marshaled, so comments are not
// preserved; the rewrite is reported against line 0.
func fixApplicationYAML(root string) ([]Applied, error) {
	const errCtx = "fixing application.yml"

	rel := "src/main/resources/application.yml"
	path := filepath.Join(root, rel)

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flags
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var doc map[string]interface{}

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding yaml: %w", errCtx, err,
		)
	}

	if !relocateJackson(doc) {
		return nil, nil
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: marshaling yaml: %w", errCtx, err,
		)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile(
		path, out, info.Mode().Perm(),
	); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return []Applied{{
		File: rel,
		Line: 0,
		Description: "moved spring.jackson.read/write" +
			" under spring.jackson.json",
	}}, nil
}

// relocateJackson moves the read/write subtrees under a
// json node, merging with any existing json settings.
// Returns true when the document changed.
func relocateJackson(doc map[string]interface{}) bool {
	spring, ok := doc["spring"].(map[string]interface{})
	if !ok {
		return false
	}

	jackson, ok := spring["jackson"].(map[string]interface{})
	if !ok {
		return false
	}

	jsonNode, ok := jackson["json"].(map[string]interface{})
	if !ok {
		jsonNode = make(map[string]interface{})
	}

	moved := false

	for _, key := range []string{"read", "write"} {
		sub, present := jackson[key]
		if !present {
			continue
		}

		jsonNode[key] = sub
		delete(jackson, key)

		moved = true
	}

	if moved {
		jackson["json"] = jsonNode
	}

	return moved
}
