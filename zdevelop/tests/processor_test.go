package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"io"
	"mime"
	stdmultipart "mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"bou.ke/monkey"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/formtools-go/charset"
	"github.com/illuscio-dev/formtools-go/formerrors"
	"github.com/illuscio-dev/formtools-go/formtypes"
	"github.com/illuscio-dev/formtools-go/mimetype"
	"github.com/illuscio-dev/formtools-go/multipart"
)

// requestTemplate is a minimal outgoing-request stand-in backed by an
// http.Header.
type requestTemplate struct {
	headers http.Header
	body    []byte
}

func newRequestTemplate() *requestTemplate {
	return &requestTemplate{headers: make(http.Header)}
}

func (template *requestTemplate) SetHeader(name string, values ...string) {
	template.headers.Del(name)
	for _, value := range values {
		template.headers.Add(name, value)
	}
}

func (template *requestTemplate) SetBody(body []byte) {
	template.body = body
}

func createProcessor(
	test *testing.T, opts ...multipart.ProcessorOpt,
) *multipart.ContentProcessor {
	return multipart.NewContentProcessor(createEngine(test), opts...)
}

// parseBody splits an encoded body back into parts using the stdlib multipart
// reader and the boundary advertised by the header value.
func parseBody(
	test *testing.T, body []byte, contentType string,
) ([]*partRecord, string) {
	assert := assert.New(test)

	mediaType, params, err := mime.ParseMediaType(contentType)
	assert.Nil(err)
	assert.Equal("multipart/form-data", mediaType)

	boundary := params["boundary"]
	assert.NotEmpty(boundary)

	reader := stdmultipart.NewReader(bytes.NewReader(body), boundary)

	records := make([]*partRecord, 0)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			test.Fatal(err)
		}

		content, err := io.ReadAll(part)
		if err != nil {
			test.Fatal(err)
		}

		records = append(records, &partRecord{
			FormName:    part.FormName(),
			FileName:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Content:     string(content),
		})
	}

	return records, boundary
}

type partRecord struct {
	FormName    string
	FileName    string
	ContentType string
	Content     string
}

func TestEncodeNilPointerField(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	fields := multipart.NewFields().Set("note", (*string)(nil))

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	records, _ := parseBody(test, body, contentType)
	assert.Len(records, 1)
	assert.Equal("note", records[0].FormName)
	assert.Equal("application/json", records[0].ContentType)
	assert.Equal("null", records[0].Content)
}

func TestEncodeRoundTrip(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	fields := multipart.NewFields().Set("name", "value")

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	// Header value carries media type, charset and boundary.
	assert.True(strings.HasPrefix(
		contentType, "multipart/form-data; charset=UTF-8; boundary=",
	))

	records, boundary := parseBody(test, body, contentType)
	assert.Len(records, 1)
	assert.Equal("name", records[0].FormName)
	assert.Equal("value", records[0].Content)

	// Boundary token in the header is byte-identical to the separators and
	// the terminal marker.
	bodyString := string(body)
	assert.Contains(bodyString, "--"+boundary+"\r\n")
	assert.True(strings.HasSuffix(bodyString, "--"+boundary+"--\r\n"))

	// Raw part layout.
	assert.Contains(
		bodyString, "Content-Disposition: form-data; name=\"name\"\r\n",
	)
}

func TestEncodePartOrderFollowsMapping(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	fields := multipart.NewFields().
		Set("zulu", "last comes first").
		Set("alpha", "first comes last")

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	records, _ := parseBody(test, body, contentType)
	assert.Len(records, 2)
	assert.Equal("zulu", records[0].FormName)
	assert.Equal("alpha", records[1].FormName)
}

func TestEncodeManyFilesScenario(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	fields := multipart.NewFields().Set("files", []formtypes.File{
		formtypes.VirtualFile{
			FileName:  "first.json",
			MediaType: mimetype.JSON,
			Data:      []byte(`{"index":1}`),
		},
		formtypes.VirtualFile{
			FileName:  "second.json",
			MediaType: mimetype.JSON,
			Data:      []byte(`{"index":2}`),
		},
	})

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	records, _ := parseBody(test, body, contentType)
	assert.Len(records, 2)

	assert.Equal("files", records[0].FormName)
	assert.Equal("files", records[1].FormName)
	assert.Equal("first.json", records[0].FileName)
	assert.Equal("second.json", records[1].FileName)
	assert.Equal("application/json", records[0].ContentType)
	assert.Equal(`{"index":1}`, records[0].Content)
	assert.Equal(`{"index":2}`, records[1].Content)
}

func TestEncodeCompositeScenario(test *testing.T) {
	assert := assert.New(test)

	type User struct {
		Name string `form:"name"`
		Age  int    `form:"age"`
	}

	processor := createProcessor(test)
	fields := multipart.NewFields().Set("user", User{Name: "a", Age: 3})

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	records, _ := parseBody(test, body, contentType)

	expected := []*partRecord{
		{
			FormName:    "user.name",
			ContentType: "text/plain; charset=UTF-8",
			Content:     "a",
		},
		{
			FormName:    "user.age",
			ContentType: "text/plain; charset=UTF-8",
			Content:     "3",
		},
	}
	assert.Empty(cmp.Diff(expected, records))
}

func TestEncodeMixedKinds(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	fields := multipart.NewFields().
		Set("blob", []byte{0xCA, 0xFE}).
		Set("note", "hello").
		Set("meta", formtypes.FormData{
			ContentType: mimetype.YAML,
			Data:        []byte("key: value\n"),
		}).
		Set("scores", []int{9, 8, 7})

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	records, _ := parseBody(test, body, contentType)
	assert.Len(records, 4)

	assert.Equal("application/octet-stream", records[0].ContentType)
	assert.Equal("\xCA\xFE", records[0].Content)

	assert.Equal("text/plain; charset=UTF-8", records[1].ContentType)
	assert.Equal("hello", records[1].Content)

	assert.Equal("application/yaml", records[2].ContentType)

	// Slices reach the delegate and come back as json.
	assert.Equal("application/json", records[3].ContentType)
	assert.Equal("[9,8,7]", records[3].Content)
}

func TestEncodeEmptyMapping(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)

	body, contentType, err := processor.Encode(charset.UTF8, multipart.NewFields())
	assert.Nil(err)

	records, boundary := parseBody(test, body, contentType)
	assert.Len(records, 0)
	assert.Equal("--"+boundary+"--\r\n", string(body))
}

func TestEncodeFreshBoundaryPerPass(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(
		test, multipart.WithBoundarySource(multipart.RandomBoundary),
	)
	fields := multipart.NewFields().Set("name", "value")

	_, firstHeader, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)
	_, secondHeader, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	assert.NotEqual(firstHeader, secondHeader)
}

func TestTimeBoundaryFromClock(test *testing.T) {
	assert := assert.New(test)

	frozen := time.Date(2024, 11, 5, 8, 30, 0, 0, time.UTC)

	monkey.Patch(time.Now, func() time.Time { return frozen })
	defer monkey.UnpatchAll()

	expected := strconv.FormatInt(frozen.UnixMilli(), 16)
	assert.Equal(expected, multipart.TimeBoundary())
}

func TestEncodeLatin1Charset(test *testing.T) {
	assert := assert.New(test)

	latin1, err := charset.Named("ISO-8859-1")
	assert.Nil(err)

	processor := createProcessor(test)
	fields := multipart.NewFields().Set("greeting", "naïve")

	body, contentType, err := processor.Encode(latin1, fields)
	assert.Nil(err)
	assert.Contains(contentType, "charset=ISO-8859-1")

	// Part content is transcoded: single latin-1 byte for ï.
	assert.Contains(string(body), "na\xEFve")
}

func TestProcessSetsTemplate(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	template := newRequestTemplate()
	fields := multipart.NewFields().Set("name", "value")

	err := processor.Process(template, charset.UTF8, fields)
	assert.Nil(err)

	contentType := template.headers.Get("Content-Type")
	assert.Len(template.headers.Values("Content-Type"), 1)

	records, _ := parseBody(test, template.body, contentType)
	assert.Len(records, 1)
	assert.Equal("name", records[0].FormName)
}

func TestProcessFailureLeavesTemplateUntouched(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)

	template := newRequestTemplate()
	template.SetHeader("Content-Type", "application/json")
	template.SetBody([]byte(`{"prior":"body"}`))

	fields := multipart.NewFields().
		Set("fine", "value").
		Set("upload", brokenFile{})

	err := processor.Process(template, charset.UTF8, fields)

	assert.True(xerrors.Is(err, formerrors.EncodingError))
	assert.Equal("application/json", template.headers.Get("Content-Type"))
	assert.Equal([]byte(`{"prior":"body"}`), template.body)
}

func TestEncodeFailureReturnsNothing(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)
	fields := multipart.NewFields().Set("upload", unopenableFile{})

	body, contentType, err := processor.Encode(charset.UTF8, fields)

	assert.True(xerrors.Is(err, formerrors.EncodingError))
	assert.Nil(body)
	assert.Empty(contentType)
}

func TestProcessorCustomWriterRegistration(test *testing.T) {
	assert := assert.New(test)

	processor := createProcessor(test)

	// Upper-cases every string field, overriding the default parameter writer.
	processor.Chain().Prepend(&shoutingWriter{})

	fields := multipart.NewFields().Set("name", "value")

	body, contentType, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	records, _ := parseBody(test, body, contentType)
	assert.Len(records, 1)
	assert.Equal("VALUE", records[0].Content)
}

func TestProcessorWithLogger(test *testing.T) {
	assert := assert.New(test)

	logOutput := &bytes.Buffer{}
	logger := zerolog.New(logOutput).Level(zerolog.DebugLevel)

	processor := createProcessor(test, multipart.WithLogger(logger))
	fields := multipart.NewFields().Set("name", "value")

	_, _, err := processor.Encode(charset.UTF8, fields)
	assert.Nil(err)

	assert.Contains(logOutput.String(), "dispatched field")
	assert.Contains(logOutput.String(), `"key":"name"`)
}

// shoutingWriter upper-cases string values, standing in for a caller-supplied
// value kind override.
type shoutingWriter struct{}

func (writer *shoutingWriter) Applicable(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

func (writer *shoutingWriter) Write(
	out *multipart.Output, boundary string, key string, value interface{},
) error {
	out.WriteString("--").WriteString(boundary).WriteCRLF().
		WriteString(`Content-Disposition: form-data; name="`).
		WriteString(key).
		WriteString(`"`).
		WriteCRLF().
		WriteCRLF().
		WriteString(strings.ToUpper(value.(string))).
		WriteCRLF()

	return out.Err()
}
