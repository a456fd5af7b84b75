// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package save writes registry responses to disk.
package save

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pnum-lookup/internal/client"
	"github.com/pdiddy/pnum-lookup/internal/format"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

// Filename returns response_<action>[_<pnum>].<ext> for the given format.
func Filename(action types.Action, pnum string, f types.SaveFormat) string {
	name := "response_" + string(action)
	if pnum != "" {
		name += "_" + pnum
	}
	return name + "." + extension(f)
}

// Write encodes resp in format f and writes it into dir. The action and pnum
// used in the filename are recovered from the response URL. It returns the
// path written.
func Write(dir string, resp *client.Response, f types.SaveFormat) (string, error) {
	if f == "" {
		f = types.FormatJSON
	}

	var (
		data []byte
		err  error
	)
	switch f {
	case types.FormatJSON:
		data, err = format.IndentJSON(resp.Body)
	case types.FormatYAML:
		data, err = toYAML(resp.Body)
	default:
		return "", fmt.Errorf("unsupported save format %q: use json or yaml", f)
	}
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(resp.Action(), resp.Pnum(), f))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func extension(f types.SaveFormat) string {
	if f == types.FormatYAML {
		return "yaml"
	}
	return "json"
}

// toYAML converts a JSON document to block-style YAML, keeping key order.
// JSON is valid YAML, so the document is parsed as a node tree and re-emitted.
func toYAML(body []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing response body: %w", err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("parsing response body: empty document")
	}
	blockStyle(&doc)

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// blockStyle clears the flow style JSON input leaves on mappings and sequences.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
