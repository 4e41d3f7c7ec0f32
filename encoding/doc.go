// Generic value serialization used as the multipart fallback.
/*
This package supplies the delegate half of the multipart writer chain: when a
field value is accepted by no specialized part writer, the fallback writer hands
the raw value to a ContentEngine together with a target mimetype and copies the
resulting bytes into the body verbatim.

Specific objectives

1. Callers can delegate arbitrary object serializations without teaching the
multipart layer anything about the value's shape.

2. Support for a new serialization only has to be added once, by registering an
Encoder for its mimetype, and is then available to every content processor built
on the engine.

3. The engine is independent of the multipart layer. Anything implementing
ContentEngine can be swapped in as a processor's delegate, and the default
FormEngine is usable on its own wherever "object in, encoded bytes out" is
needed.
*/
package encoding
