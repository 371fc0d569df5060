package wm

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec encodes the persisted record set and application data.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	// JSON is the default codec.
	JSON Codec = jsonCodec{}
	// YAML stores state in a hand-editable form.
	YAML Codec = yamlCodec{}
)

// CodecByName returns the codec registered under name ("json" or "yaml").
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type yamlCodec struct{}

func (yamlCodec) Name() string                       { return "yaml" }
func (yamlCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
