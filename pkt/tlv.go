// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package pkt

import "errors"

// ErrTruncatedTLV is returned by TLVDecodeAll when a tag/length header or
// its value runs past the end of the buffer.
var ErrTruncatedTLV = errors.New("pkt: truncated TLV stream")

// TLVField is one decoded tag/length/value record.
type TLVField struct {
	Tag   uint32
	Value []byte
}

// TLVAppend appends one tag/length/value record to buf and returns the
// extended slice: tag:u32-LE | length:u32-LE | bytes[length].
func TLVAppend(buf []byte, tag uint32, value []byte) []byte {
	head := make([]byte, 8)
	LEWriteU32(head[0:4], tag)
	LEWriteU32(head[4:8], uint32(len(value)))
	buf = append(buf, head...)
	buf = append(buf, value...)
	return buf
}

// TLVDecodeAll walks buf as a stream of tag/length/value records.
// Unknown tags are returned like any other — skipping them is the
// caller's responsibility, matching "unknown tags are skipped" at the
// consumer, not the framer.
func TLVDecodeAll(buf []byte) ([]TLVField, error) {
	var fields []TLVField
	for len(buf) > 0 {
		if len(buf) < 8 {
			return nil, ErrTruncatedTLV
		}
		tag := LEReadU32(buf[0:4])
		length := LEReadU32(buf[4:8])
		buf = buf[8:]
		if uint64(length) > uint64(len(buf)) {
			return nil, ErrTruncatedTLV
		}
		fields = append(fields, TLVField{Tag: tag, Value: buf[:length:length]})
		buf = buf[length:]
	}
	return fields, nil
}

// TLVFind returns the value of the first field with the given tag,
// skipping every other (including unknown) tag, and reports whether it
// was found.
func TLVFind(fields []TLVField, tag uint32) ([]byte, bool) {
	for _, f := range fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return nil, false
}
