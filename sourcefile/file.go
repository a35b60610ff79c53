package sourcefile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/voxelml/trellis"
)

// Options configures file source behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false
	// (returns an empty mapping).
	Required bool
}

type fileSource struct {
	path string
	opts Options
}

// New creates a file-based configuration source.
func New(path string, opts Options) trellis.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Load reads and parses the file into a node tree.
func (f *fileSource) Load(ctx context.Context) (*trellis.Node, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required config file not found: %s: %w", f.path, err)
			}
			return trellis.NewMapping(), nil
		}
		return nil, fmt.Errorf("read config file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	return Parse(data, format, f.path)
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

type readerSource struct {
	r      io.Reader
	format string
	name   string
}

// FromReader creates a source that parses a stream in the given format.
// The name is used for error messages and provenance.
func FromReader(r io.Reader, format, name string) trellis.Source {
	return &readerSource{r: r, format: format, name: name}
}

func (s *readerSource) Load(ctx context.Context) (*trellis.Node, error) {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("read config stream %s: %w", s.name, err)
	}
	return Parse(data, s.format, s.name)
}

func (s *readerSource) Name() string {
	return "stream:" + s.name
}

// Parse decodes a document in the given format ("yaml", "json" or "toml")
// into a node tree. Scalars get the narrowest kind their literal syntax
// allows; YAML and JSON mappings keep document key order.
func Parse(data []byte, format, name string) (*trellis.Node, error) {
	switch format {
	case "yaml", "yml":
		return parseYAML(data, name)
	case "json":
		return parseJSON(data, name)
	case "toml":
		return parseTOML(data, name)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}
}

func parseYAML(data []byte, name string) (*trellis.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &trellis.ParseError{Source: name, Format: "yaml", Err: err}
	}
	if doc.Kind == 0 {
		// Empty document.
		return trellis.NewMapping(), nil
	}
	node, err := fromYAML(&doc)
	if err != nil {
		return nil, &trellis.ParseError{Source: name, Format: "yaml", Err: err}
	}
	return node, nil
}

func fromYAML(n *yaml.Node) (*trellis.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return trellis.Null(), nil
		}
		return fromYAML(n.Content[0])

	case yaml.AliasNode:
		return fromYAML(n.Alias)

	case yaml.SequenceNode:
		items := make([]*trellis.Node, 0, len(n.Content))
		for _, item := range n.Content {
			converted, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			items = append(items, converted)
		}
		return trellis.Sequence(items...), nil

	case yaml.MappingNode:
		out := trellis.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			value, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Put(keyNode.Value, value)
		}
		return out, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return scalarFromAny(v, n.Value), nil

	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

// scalarFromAny maps a decoded scalar to the narrowest node kind.
// Timestamps stay strings; the manifest has no use for typed dates.
func scalarFromAny(v any, raw string) *trellis.Node {
	switch t := v.(type) {
	case nil:
		return trellis.Null()
	case bool:
		return trellis.Bool(t)
	case int:
		return trellis.Int(int64(t))
	case int64:
		return trellis.Int(t)
	case uint64:
		if t <= math.MaxInt64 {
			return trellis.Int(int64(t))
		}
		return trellis.Float(float64(t))
	case float64:
		return trellis.Float(t)
	case string:
		return trellis.String(t)
	case time.Time:
		return trellis.String(raw)
	default:
		return trellis.String(fmt.Sprint(v))
	}
}

// parseJSON decodes through the token stream so mapping key order is kept
// and numbers get the narrowest kind (json.Number, not float64).
func parseJSON(data []byte, name string) (*trellis.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, &trellis.ParseError{Source: name, Format: "json", Err: err}
	}
	if dec.More() {
		return nil, &trellis.ParseError{
			Source: name,
			Format: "json",
			Err:    fmt.Errorf("trailing data after top-level value"),
		}
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*trellis.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			out := trellis.NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				out.Put(key, value)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return out, nil
		case '[':
			var items []*trellis.Node
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return trellis.Sequence(items...), nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return trellis.String(t), nil
	case bool:
		return trellis.Bool(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return trellis.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return trellis.Float(f), nil
	case nil:
		return trellis.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// parseTOML decodes via go-toml's generic map. Document key order is not
// recoverable from the library, so keys are sorted for determinism.
func parseTOML(data []byte, name string) (*trellis.Node, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &trellis.ParseError{Source: name, Format: "toml", Err: err}
	}
	return fromAny(raw), nil
}

func fromAny(v any) *trellis.Node {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := trellis.NewMapping()
		for _, key := range keys {
			out.Put(key, fromAny(t[key]))
		}
		return out
	case []any:
		items := make([]*trellis.Node, 0, len(t))
		for _, item := range t {
			items = append(items, fromAny(item))
		}
		return trellis.Sequence(items...)
	default:
		return scalarFromAny(v, fmt.Sprint(v))
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
