package multipart

import (
	"strconv"

	"github.com/illuscio-dev/formtools-go/encoding"
	"github.com/illuscio-dev/formtools-go/formerrors"
	"github.com/illuscio-dev/formtools-go/mimetype"
)

/*
WriterChain is the ordered, runtime-extensible registry of part writers. For
each field, Dispatch probes writers in sequence order and selects the first
whose Applicable predicate accepts the value; when none accept, the fixed
fallback writer is selected, so no value is ever dropped silently.

Writers are not required to be mutually exclusive: FIRST MATCH WINS, making
order a governing invariant. Prepending a writer whose applicability overlaps
an existing one changes which wins; appending never affects matches already won
by earlier writers.

Mutation (Append / Prepend / ReplaceAt) is not synchronized with Dispatch.
Configure a chain fully before sharing its processor across goroutines, or
guard reconfiguration with an external lock.
*/
type WriterChain struct {
	writers  []Writer
	fallback Writer
}

// NewWriterChain creates an empty chain with the given fallback writer. The
// fallback is fixed for the chain's lifetime and is not part of the probed
// sequence.
func NewWriterChain(fallback Writer) *WriterChain {
	return &WriterChain{
		writers:  make([]Writer, 0),
		fallback: fallback,
	}
}

/*
NewDefaultChain creates a chain loaded with the default writers, probed in this
order:

1. raw byte content ([]byte / formtypes.BinData)

2. pre-encoded form data (formtypes.FormData)

3. single file (formtypes.File)

4. file collections ([]formtypes.File and concrete file slices)

5. plain scalar parameters

6. structured values (structs, string-keyed maps, nested *Fields)

The fallback is a DelegateWriter around delegate, letting the engine pick a
mimetype per value.
*/
func NewDefaultChain(delegate encoding.ContentEngine) *WriterChain {
	chain := NewWriterChain(NewDelegateWriter(delegate, mimetype.UNKNOWN))

	chain.Append(&byteArrayWriter{})
	chain.Append(&formDataWriter{})
	chain.Append(&singleFileWriter{})
	chain.Append(&manyFilesWriter{})
	chain.Append(&parameterWriter{})
	chain.Append(&pojoWriter{chain: chain})

	return chain
}

/*
Dispatch returns the writer that will encode value: the first writer in
sequence order whose Applicable predicate accepts it, or the fallback when none
do. Deterministic for a fixed chain configuration and value.
*/
func (chain *WriterChain) Dispatch(value interface{}) Writer {
	for _, writer := range chain.writers {
		if writer.Applicable(value) {
			return writer
		}
	}
	return chain.fallback
}

// Append adds a writer to the end of the probed sequence.
func (chain *WriterChain) Append(writer Writer) {
	chain.writers = append(chain.writers, writer)
}

// Prepend adds a writer to the front of the probed sequence, giving it
// priority over every existing writer.
func (chain *WriterChain) Prepend(writer Writer) {
	chain.writers = append([]Writer{writer}, chain.writers...)
}

// ReplaceAt swaps the writer at the given position in the probed sequence.
// Out-of-range positions return a formerrors.IndexError.
func (chain *WriterChain) ReplaceAt(index int, writer Writer) error {
	if index < 0 || index >= len(chain.writers) {
		return formerrors.IndexError.New(
			"no writer at position "+strconv.Itoa(index), nil,
		)
	}

	chain.writers[index] = writer
	return nil
}

// Snapshot returns a read-only copy of the probed sequence in order. Mutating
// the returned slice does not affect the chain.
func (chain *WriterChain) Snapshot() []Writer {
	snapshot := make([]Writer, len(chain.writers))
	copy(snapshot, chain.writers)
	return snapshot
}

// Fallback returns the chain's fixed fallback writer.
func (chain *WriterChain) Fallback() Writer {
	return chain.fallback
}
