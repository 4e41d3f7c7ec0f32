package multipart

import (
	"encoding/hex"
	"strconv"
	"time"

	uuid "github.com/satori/go.uuid"
)

/*
BoundarySource produces the boundary token for one encode pass. Every call must
return a fresh token; the processor embeds it in the Content-Type header and
uses it byte-identically for every part separator and the terminal marker of
that pass.
*/
type BoundarySource func() string

/*
TimeBoundary derives the token from the wall clock, as hex milliseconds. This
is the default source. Collision with part content is probabilistically
accepted rather than eliminated, and rapid repeated calls within one clock
tick can yield equal tokens across passes; callers needing stronger uniqueness
should configure RandomBoundary or their own source.
*/
func TimeBoundary() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 16)
}

// RandomBoundary derives the token from a v4 UUID, as 32 hex characters.
func RandomBoundary() string {
	id := uuid.NewV4()
	return hex.EncodeToString(id.Bytes())
}
