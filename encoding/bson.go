package encoding

import (
	"io"
	"reflect"

	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"golang.org/x/xerrors"
)

// BsonListSepString is a delimiter for top-level bson lists, which bson does not
// normally support. When multiple documents are being written to a single
// payload, the unicode SYMBOL FOR RECORD SEPARATOR is used.
// (http://fileformat.info/info/unicode/char/241e/index.htm)
const BsonListSepString = "␞"

// BsonListSepBytes is a byte representation of BsonListSepString.
var BsonListSepBytes = []byte(BsonListSepString)

// BsonCodecOpts holds options for registering new BSON codecs with FormEngine.
type BsonCodecOpts struct {
	// Type this codec handles encoding to.
	ValueType reflect.Type

	// Codec to register for this type.
	Codec bsoncodec.ValueCodec
}

var defaultBsonCodecs = []*BsonCodecOpts{
	{
		ValueType: reflect.TypeOf(uuid.UUID{}),
		Codec:     bsonCodecUUID{},
	},
}

// bsonCodecUUID handles encoding of UUIDs to bson binary primitives. The decode
// half exists only to satisfy bsoncodec.ValueCodec; this engine never parses
// bson payloads.
type bsonCodecUUID struct{}

func (codec bsonCodecUUID) EncodeValue(
	encodeCTX bsoncodec.EncodeContext,
	valueWriter bsonrw.ValueWriter,
	value reflect.Value,
) error {
	valueUUID, _ := value.Interface().(uuid.UUID)
	return valueWriter.WriteBinaryWithSubtype(valueUUID.Bytes(), 0x3)
}

func (codec bsonCodecUUID) DecodeValue(
	decodeCTX bsoncodec.DecodeContext,
	valueReader bsonrw.ValueReader,
	value reflect.Value,
) error {
	bytesUUID, _, err := valueReader.ReadBinary()
	if err != nil {
		return err
	}

	uuidVal, err := uuid.FromBytes(bytesUUID)
	if err != nil {
		return err
	}

	value.Set(reflect.ValueOf(uuidVal))

	return nil
}

// BSON Encoder for writing BSON Data to content.
type bsonEncoder struct{}

func (encoder *bsonEncoder) encodeSingle(
	formEngine *FormEngine, writer io.Writer, content interface{},
) error {
	var bodyBSON bson.Raw

	incomingRaw, isRaw := content.(*bson.Raw)

	if !isRaw {
		marshalled, err := bson.MarshalWithRegistry(formEngine.bsonRegistry, content)
		if err != nil {
			return err
		}
		bodyBSON = marshalled
	} else {
		bodyBSON = *incomingRaw
	}

	_, err := writer.Write(bodyBSON)
	return err
}

// Used to encode multiple bson objects to a single payload.
func (encoder *bsonEncoder) encodeMany(
	formEngine *FormEngine, writer io.Writer, content *reflect.Value,
) error {
	// We need to know when we are on the final index so if we hit the last item
	// we know that we don't need to write the separator.
	finalIndex := content.Len() - 1

	for arrayIndex := 0; arrayIndex <= finalIndex; arrayIndex++ {
		// We have to use reflect to grab the items since we don't know what type
		// they are.
		listValue := content.Index(arrayIndex)

		// Encode this single item.
		err := encoder.encodeSingle(formEngine, writer, listValue.Interface())
		if err != nil {
			return err
		}

		// Write the delimiter if we are not on the final item.
		if arrayIndex != finalIndex {
			_, err = writer.Write(BsonListSepBytes)
			if err != nil {
				return xerrors.Errorf(
					"error writing document separator: %w", err,
				)
			}
		}
	}
	return nil
}

// Detects whether content to encode is a sequence (array or slice)
func (encoder *bsonEncoder) isSequence(value *reflect.Value) bool {
	return value.Kind() == reflect.Slice || value.Kind() == reflect.Array
}

// Encodes bson content
func (encoder *bsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) (err error) {
	formEngine, ok := engine.(*FormEngine)
	if !ok {
		return xerrors.New("bson encoder requires a FormEngine for its registry")
	}

	// Check if the value is a slice or an array.
	contentValue := reflect.Indirect(reflect.ValueOf(content))
	// Check that it is not a raw document.
	_, isRaw := content.(*bson.Raw)

	if encoder.isSequence(&contentValue) && !isRaw {
		err = encoder.encodeMany(formEngine, writer, &contentValue)
	} else {
		err = encoder.encodeSingle(formEngine, writer, content)
	}

	return err
}
