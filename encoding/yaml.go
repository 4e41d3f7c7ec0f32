package encoding

import (
	"io"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// Handles encoding to application/yaml
type yamlEncoder struct{}

func (encoder *yamlEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	marshalled, err := yaml.Marshal(content)
	if err != nil {
		return xerrors.Errorf("error marshalling yaml: %w", err)
	}

	_, err = writer.Write(marshalled)
	return err
}
