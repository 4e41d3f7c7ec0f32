package encoding

import (
	"io"

	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/formtools-go/mimetype"
)

// Type helpers
type encoderMapping map[mimetype.MimeType]Encoder

// Interface for defining a content encoder.
type Encoder interface {
	// To be implemented by content encoder. Implementation is expected to write
	// content to writer. The content engine which is calling Encode is made
	// available through engine, allowing encoders to access engine-level settings.
	Encode(engine ContentEngine, writer io.Writer, content interface{}) error
}

/*
ContentEngine details the contract for a generic value-serialization engine. The
multipart fallback writer delegates to a ContentEngine whenever a field value is
accepted by no specialized writer, so any encoder registry satisfying this
interface can be plugged in as the delegate of a content processor.

The engine is write-only: multipart bodies are produced, never parsed.
*/
type ContentEngine interface {
	// Registers an encoder for a given mimetype.
	SetEncoder(mimeType mimetype.MimeType, encoder Encoder)

	// Returns true if the engine has a registered encoder for the mimetype.
	HandlesEncode(mimeType mimetype.MimeType) bool

	// Encode content as mimeType to writer.
	Encode(
		mimeType mimetype.MimeType,
		content interface{},
		writer io.Writer,
	) error
}

/*
FormEngine is the default implementation of the ContentEngine interface.
Implementation is done through an Interface so that the Engine can be extended
through type wrapping.

# Instantiation

Use NewContentEngine() to create a new FormEngine.

# Default Mimetypes

• text/plain

• application/json

• application/yaml

• application/bson

# Default JSON Extensions

FormEngine uses the codec library to encode json
(https://godoc.org/github.com/ugorji/go/codec), which allows the definition of
extensions. FormEngine ships with the following types handled:

• Binary blob data as the named type BinData in the "formtypes" package is
represented as a hex string.

Additional json extensions can be registered through AddJSONExtensions() by
passing a slice of JSONExtensionOpts objects.

# Default BSON Codecs

FormEngine handles the encoding of bson data through the official bson driver
(https://godoc.org/go.mongodb.org/mongo-driver). UUIDs from
"github.com/satori/go.uuid" are encoded as BSON Binary primitives of subtype
0x3, and additional codecs can be registered with AddBSONCodecs().

Default Text/Plain Returns

When encoding to plaintext, fmt.Sprint is used on the passed object, so any type
can be sent and represented as text.

# Panics

If an encoder panics during execution, that panic is caught and returned as an
error.
*/
type FormEngine struct {
	// MimeType:Encoder mapping
	encoders encoderMapping

	// JSON handle for default JSON encoder
	jsonHandle *codec.JsonHandle
	// BSON registry for default BSON encoder
	bsonRegistry *bsoncodec.Registry
	// BSON codecs
	bsonCodecs []*BsonCodecOpts
	// Engine to pass to Encoder.Encode() methods.
	passedEngine ContentEngine
}

// Change the engine passed into Encoder.Encode(). Used when extending the
// engine through type wrapping.
func (engine *FormEngine) SetPassedEngine(newEngine ContentEngine) {
	engine.passedEngine = newEngine
}

// Register an encoder for a given mimeType
func (engine *FormEngine) SetEncoder(mimeType mimetype.MimeType, encoder Encoder) {
	engine.encoders[mimeType] = encoder
}

// Whether the FormEngine has a registered encoder for mimeType.
func (engine *FormEngine) HandlesEncode(mimeType mimetype.MimeType) bool {
	_, ok := engine.encoders[mimeType]
	return ok
}

// Select what engine to pass into the encoder in case we are extending the
// engine type.
func (engine *FormEngine) getEngine() (passEngine ContentEngine) {
	if engine.passedEngine != nil {
		passEngine = engine.passedEngine
	} else {
		passEngine = engine
	}

	return passEngine
}

// Uses an encoder while catching panics to return as errors
func (engine *FormEngine) safeEncode(
	encoder Encoder, writer io.Writer, content interface{},
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during encode: %v", recovered)
		}
	}()

	passEngine := engine.getEngine()
	err = encoder.Encode(passEngine, writer, content)
	return err
}

// Picks the mimetype for encoding objects when the target mimetype is unknown.
func pickContentMimeType(
	mimeType mimetype.MimeType, content interface{},
) mimetype.MimeType {
	if mimeType == mimetype.UNKNOWN {
		mimeType = mimetype.JSON
		switch typed := content.(type) {
		case string:
			mimeType = mimetype.TEXT
		case *string:
			// A nil *string has no text rendition and encodes as json null.
			if typed != nil {
				mimeType = mimetype.TEXT
			}
		}
	}
	return mimeType
}

// PickMimeType resolves the mimetype UNKNOWN targets will actually be encoded
// as for a given value, mirroring the choice Encode makes internally. Known
// targets pass through unchanged.
func PickMimeType(
	mimeType mimetype.MimeType, content interface{},
) mimetype.MimeType {
	return pickContentMimeType(mimeType, content)
}

func (engine *FormEngine) Encode(
	mimeType mimetype.MimeType,
	content interface{},
	writer io.Writer,
) error {
	mimeType = pickContentMimeType(mimeType, content)

	encoder, ok := engine.encoders[mimeType]
	if !ok {
		return xerrors.New("no encoder for " + string(mimeType))
	}

	err := engine.safeEncode(encoder, writer, content)
	if err != nil {
		return xerrors.Errorf(
			"encode err: %w", err,
		)
	}
	return nil
}

func (engine *FormEngine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// Returns the internal bsoncodec.Registry used by the bson encoder.
func (engine *FormEngine) BSONRegistry() *bsoncodec.Registry {
	return engine.bsonRegistry
}

// Adds JSON extensions to handle.
func (engine *FormEngine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extOpts := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extOpts.ValueType, 1, extOpts.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf(
				"error adding json extension to content engine: %w", err,
			)
		}
	}
	return nil
}

// Adds BSON codecs to engine for use when encoding bson data.
func (engine *FormEngine) AddBSONCodecs(codecs []*BsonCodecOpts) error {
	// Store these codecs for later in case more are added by the end user and we
	// need to declare a new registry.
	engine.bsonCodecs = append(engine.bsonCodecs, codecs...)

	builder := bsoncodec.NewRegistryBuilder()
	bsoncodec.DefaultValueEncoders{}.RegisterDefaultEncoders(builder)
	bsoncodec.DefaultValueDecoders{}.RegisterDefaultDecoders(builder)

	for _, codecOpts := range engine.bsonCodecs {
		builder.RegisterCodec(codecOpts.ValueType, codecOpts.Codec)
	}

	// Build the bson registry.
	engine.bsonRegistry = builder.Build()

	return nil
}

func NewContentEngine() (*FormEngine, error) {
	// Create the json handle.
	jsonHandle := &codec.JsonHandle{}

	// Create the content engine.
	engine := &FormEngine{
		encoders:     make(encoderMapping),
		jsonHandle:   jsonHandle,
		bsonRegistry: nil,
	}

	// Add the default encoders.
	engine.SetEncoder(mimetype.JSON, &jsonEncoder{})
	engine.SetEncoder(mimetype.BSON, &bsonEncoder{})
	engine.SetEncoder(mimetype.YAML, &yamlEncoder{})
	engine.SetEncoder(mimetype.TEXT, &textEncoder{})

	// Add the default json extensions to the engine.
	if err := engine.AddJSONExtensions(defaultJSONExtensions); err != nil {
		err = xerrors.Errorf("error adding default json extensions: %w", err)
		return nil, err
	}

	// Add the default bson codecs to the engine.
	if err := engine.AddBSONCodecs(defaultBsonCodecs); err != nil {
		err = xerrors.Errorf("error adding default bson codecs: %w", err)
		return nil, err
	}

	return engine, nil
}
