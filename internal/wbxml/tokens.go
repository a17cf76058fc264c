// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

// MIMEType is the content type of WBXML request and response bodies.
const MIMEType = "application/vnd.ms-sync.wbxml"

const (
	version13     byte   = 0x03
	publicIDUnkn  uint32 = 0x01
	charsetUTF8   uint32 = 106
	charsetUnknown uint32 = 0
)

// Global tokens (WBXML 1.3 §7.1).
const (
	tokSwitchPage byte = 0x00
	tokEnd        byte = 0x01
	tokEntity     byte = 0x02
	tokStrI       byte = 0x03
	tokLiteral    byte = 0x04
	tokExtI0      byte = 0x40
	tokExtI1      byte = 0x41
	tokExtI2      byte = 0x42
	tokPI         byte = 0x43
	tokLiteralC   byte = 0x44
	tokExtT0      byte = 0x80
	tokExtT1      byte = 0x81
	tokExtT2      byte = 0x82
	tokStrT       byte = 0x83
	tokLiteralA   byte = 0x84
	tokExt0       byte = 0xC0
	tokExt1       byte = 0xC1
	tokExt2       byte = 0xC2
	tokOpaque     byte = 0xC3
	tokLiteralAC  byte = 0xC4
)

const (
	flagContent    byte = 0x40
	flagAttributes byte = 0x80
	codeMask       byte = 0x3F
)

// appendMbUint32 appends v as a WBXML multi-byte integer: big-endian 7-bit
// groups with the high bit set on every byte but the last.
func appendMbUint32(dst []byte, v uint32) []byte {
	var buf [5]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		buf[i] = byte(v&0x7F) | 0x80
	}
	return append(dst, buf[i:]...)
}
