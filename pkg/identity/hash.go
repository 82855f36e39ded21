// Package identity derives deterministic 32-bit identities from the static
// fields of warehouse records. The same inputs produce the same identity
// across processes and machines; the identity doubles as the storage key,
// so there is no separate ID counter anywhere in the system.
package identity

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// TimeLayout is the canonical timestamp form: ISO-8601 with microsecond
// precision and no zone designator.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Blob is an opaque payload with a label naming its origin (library,
// framework, file format). The bytes are never interpreted; for identity
// purposes a Blob canonicalizes to its byte length only, so identity
// stability for blobs is limited to their size.
type Blob struct {
	Label string
	Data  []byte
}

// Size returns the payload length in bytes.
func (b Blob) Size() int { return len(b.Data) }

// Hash reduces the canonical serialization of vals to a signed 32-bit
// identity: MD5 over the canonical text, then two's-complement truncation
// of the digest's numeric value to 32 bits. Truncation keeps the low four
// digest bytes (big-endian), not a modulo reduction.
func Hash(vals ...any) int32 {
	sum := md5.Sum([]byte(Canonical(vals...)))
	return int32(binary.BigEndian.Uint32(sum[12:16]))
}

// Canonical serializes vals as a tuple in canonical text form. Strings,
// numbers and bools pass through; timestamps use TimeLayout; nested tuples
// serialize element-wise; blobs serialize to their size. Any other kind
// serializes to the byte length of its default formatting, which is an
// implementation-defined size indicator only.
func Canonical(vals ...any) string {
	var sb strings.Builder
	writeTuple(&sb, vals)
	return sb.String()
}

func writeTuple(sb *strings.Builder, vals []any) {
	sb.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(sb, v)
	}
	sb.WriteByte(']')
}

func writeValue(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("null")
	case string:
		writeString(sb, x)
	case bool:
		if x {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case int:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(x, 10))
	case uint:
		sb.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		sb.WriteString(strconv.FormatUint(x, 10))
	case float32:
		writeFloat(sb, float64(x))
	case float64:
		writeFloat(sb, x)
	case time.Time:
		writeString(sb, x.Format(TimeLayout))
	case []any:
		writeTuple(sb, x)
	case Blob:
		sb.WriteString(strconv.Itoa(x.Size()))
	case *Blob:
		sb.WriteString(strconv.Itoa(x.Size()))
	default:
		// Size indicator for non-literal kinds.
		sb.WriteString(strconv.Itoa(len(fmt.Sprint(v))))
	}
}

// writeFloat renders a float in its shortest round-trippable decimal form.
func writeFloat(sb *strings.Builder, f float64) {
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		// Whole-valued floats keep a trailing ".0" so they never collide
		// with the integer of the same value.
		sb.WriteString(strconv.FormatFloat(f, 'f', 1, 64))
		return
	}
	sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

// writeString renders s as a quoted string with ASCII-only escapes.
func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r > 0x7e {
				for _, u := range utf16.Encode([]rune{r}) {
					fmt.Fprintf(sb, `\u%04x`, u)
				}
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
