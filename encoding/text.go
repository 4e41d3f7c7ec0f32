package encoding

import (
	"fmt"
	"io"
)

// TODO: Add ability to register custom formatting functions for named types.

// Handles encoding to text/plain
type textEncoder struct{}

func (encoder *textEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	contentString := fmt.Sprint(content)
	_, err := io.WriteString(writer, contentString)

	return err
}
