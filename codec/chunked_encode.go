package codec

import "strconv"

// EncodeChunk formats a single chunk: hex(len) CRLF bytes CRLF.
func EncodeChunk(data []byte) []byte {
	buf := make([]byte, 0, len(data)+16)
	buf = strconv.AppendInt(buf, int64(len(data)), 16)
	buf = appendCRLF(buf)
	buf = append(buf, data...)
	buf = appendCRLF(buf)
	return buf
}

// EncodeChunks concatenates EncodeChunk over chunks and appends the
// zero-length terminating chunk ("0" CRLF CRLF). It emits no trailers.
func EncodeChunks(chunks [][]byte) []byte {
	size := 5
	for _, c := range chunks {
		size += len(c) + 16
	}
	buf := make([]byte, 0, size)
	for _, c := range chunks {
		buf = strconv.AppendInt(buf, int64(len(c)), 16)
		buf = appendCRLF(buf)
		buf = append(buf, c...)
		buf = appendCRLF(buf)
	}
	buf = append(buf, '0')
	buf = appendCRLF(buf)
	buf = appendCRLF(buf)
	return buf
}
