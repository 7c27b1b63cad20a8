// File: cogwheel/variant.go
package cogwheel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Variant identifies one supported serialization format.
type Variant string

const (
	// VariantUnknown means no explicit variant; file operations resolve
	// it from the path extension via GuessVariant.
	VariantUnknown Variant = ""
	// VariantJSON selects the JSON codec
	VariantJSON Variant = "json"
	// VariantTOML selects the TOML codec
	VariantTOML Variant = "toml"
	// VariantYAML selects the YAML codec
	VariantYAML Variant = "yaml"
)

// Codec converts between serialized text and Go values for one format.
// Marshal output must be human-readable; configuration files are meant
// to be hand-edited.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	codecMu sync.RWMutex
	codecs  = make(map[Variant]Codec)
)

// RegisterCodec makes a codec available under the given variant,
// replacing any previous registration for it.
func RegisterCodec(variant Variant, codec Codec) {
	codecMu.Lock()
	defer codecMu.Unlock()
	codecs[variant] = codec
}

// codecFor looks up the codec registered for a variant.
func codecFor(variant Variant) (Codec, error) {
	codecMu.RLock()
	defer codecMu.RUnlock()

	codec, ok := codecs[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	return codec, nil
}

func init() {
	RegisterCodec(VariantJSON, jsonCodec{})
	RegisterCodec(VariantTOML, tomlCodec{})
	RegisterCodec(VariantYAML, yamlCodec{})
}

// GuessVariant resolves a variant from the file extension.
// It is consulted only when the caller passes VariantUnknown.
func GuessVariant(path string) (Variant, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return VariantJSON, nil
	case "toml":
		return VariantTOML, nil
	case "yaml", "yml":
		return VariantYAML, nil
	}
	return VariantUnknown, fmt.Errorf("%w: %q", ErrCouldNotGuess, path)
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Preserve number precision
	return decoder.Decode(v)
}

type tomlCodec struct{}

func (tomlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
