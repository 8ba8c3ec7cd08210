package things

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const importantField = "important_field"

// Decode reads the whole body and decodes it into a Thing. A non-nil error
// is always a *DeserializeError: KindIO when the body cannot be read as
// text, KindParse when the text is not a valid Thing.
func Decode(r io.Reader) (Thing, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Thing{}, ioError(err.Error(), err)
	}
	if !utf8.Valid(b) {
		return Thing{}, ioError("stream did not contain valid UTF-8", nil)
	}
	return DecodeBytes(b)
}

// DecodeBytes decodes an already buffered body. Parse failures carry the
// body text and a message ending in "at line L column C".
func DecodeBytes(b []byte) (Thing, error) {
	if err := json.Unmarshal(b, new(json.RawMessage)); err != nil {
		return Thing{}, syntaxFailure(b, err)
	}

	d := &thingDecoder{buf: b, dec: json.NewDecoder(bytes.NewReader(b))}
	d.dec.UseNumber()
	return d.decode()
}

// thingDecoder walks the token stream of a syntactically valid body so
// that keys match exactly and every failure knows its offset.
type thingDecoder struct {
	buf []byte
	dec *json.Decoder
}

func (d *thingDecoder) decode() (Thing, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return Thing{}, d.fail(err.Error(), err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Thing{}, d.fail("invalid type: "+describe(tok)+", expected struct Thing", nil)
	}

	var (
		value bool
		seen  bool
	)
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return Thing{}, d.fail(err.Error(), err)
		}
		key, _ := tok.(string)
		if key != importantField {
			var skip json.RawMessage
			if err := d.dec.Decode(&skip); err != nil {
				return Thing{}, d.fail(err.Error(), err)
			}
			continue
		}
		if seen {
			return Thing{}, d.fail("duplicate field `"+importantField+"`", nil)
		}
		seen = true

		tok, err = d.dec.Token()
		if err != nil {
			return Thing{}, d.fail(err.Error(), err)
		}
		v, ok := tok.(bool)
		if !ok {
			return Thing{}, d.fail("invalid type: "+describe(tok)+", expected a boolean", nil)
		}
		value = v
	}
	if _, err := d.dec.Token(); err != nil {
		return Thing{}, d.fail(err.Error(), err)
	}
	if !seen {
		return Thing{}, d.fail("missing field `"+importantField+"`", nil)
	}
	return Thing{ImportantField: value}, nil
}

// fail reports msg at the last byte the decoder consumed.
func (d *thingDecoder) fail(msg string, cause error) error {
	return located(d.buf, msg, d.dec.InputOffset(), cause)
}

func syntaxFailure(b []byte, err error) error {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return located(b, err.Error(), int64(len(b)), err)
	}
	msg := se.Error()
	switch {
	case msg == "unexpected end of JSON input":
		msg = "EOF while parsing a value"
	case strings.HasSuffix(msg, "after top-level value"):
		msg = "trailing characters"
	}
	return located(b, msg, se.Offset, err)
}

func located(b []byte, msg string, offset int64, cause error) error {
	line, col := position(b, offset)
	return parseError(string(b), fmt.Sprintf("%s at line %d column %d", msg, line, col), cause)
}

// position converts a byte offset into a 1-based line and the column of the
// byte just before offset. An offset at the start of a line yields column 0.
func position(b []byte, offset int64) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(b)) {
		offset = int64(len(b))
	}
	prefix := b[:offset]
	line = 1 + bytes.Count(prefix, []byte{'\n'})
	col = len(prefix) - (bytes.LastIndexByte(prefix, '\n') + 1)
	return line, col
}

// describe names a JSON token the way type mismatch messages expect.
func describe(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case bool:
		return fmt.Sprintf("boolean `%t`", v)
	case string:
		return fmt.Sprintf("string %q", v)
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return "integer `" + v.String() + "`"
		}
		return "floating point `" + v.String() + "`"
	case json.Delim:
		if v == '[' {
			return "sequence"
		}
		return "map"
	default:
		return fmt.Sprintf("%v", v)
	}
}
