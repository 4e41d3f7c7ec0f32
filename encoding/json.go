package encoding

import (
	"encoding/hex"
	"io"
	"reflect"

	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/formtools-go/formtypes"
)

// JSONExtensionOpts holds options for a Json Handle extension to add to the
// handle on engine setup.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	ExtInterface codec.InterfaceExt
}

// defaultJSONExtensions holds all the JSONExtensionOpts to add to the JSONHandle
// on engine setup
var defaultJSONExtensions = []*JSONExtensionOpts{
	{
		ValueType:    reflect.TypeOf(formtypes.BinData{}),
		ExtInterface: &jsonExtBinData{},
	},
}

// Converts BinData fields to a hex string for json transport.
type jsonExtBinData struct{}

func (ext *jsonExtBinData) ConvertExt(value interface{}) interface{} {
	var valueBin formtypes.BinData

	switch typed := value.(type) {
	case formtypes.BinData:
		valueBin = typed
	case *formtypes.BinData:
		valueBin = *typed
	default:
		panic(xerrors.New("unsupported BinData value"))
	}

	return hex.EncodeToString(valueBin)
}

func (ext *jsonExtBinData) UpdateExt(dest interface{}, value interface{}) {
	panic(xerrors.New("decoding to BinData field not supported"))
}

// default JSON encoder for FormEngine.
type jsonEncoder struct{}

func (encoder *jsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	formEngine, ok := engine.(*FormEngine)
	if !ok {
		return xerrors.New("json encoder requires a FormEngine for its handle")
	}

	jsonEncoder := codec.NewEncoder(writer, formEngine.jsonHandle)
	return jsonEncoder.Encode(content)
}
