// Package reportutil holds small formatting helpers shared by the report
// writer and the CLI's --dump-tree output.
package reportutil

import (
	"bytes"
	"io"
)

// Writer prefixes every line written through it with a fixed string,
// including a final line with no trailing newline. Used by --dump-tree and
// --dump-tree-detailed to indent nested structure elements by depth.
type Writer struct {
	w      io.Writer
	prefix []byte
	atBOL  bool
}

// NewWriter returns a Writer that prepends prefix to every line written to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write implements io.Writer, prefixing each line as it is written. The
// returned count is the number of bytes of p consumed, not counting the
// prefix bytes themselves.
func (iw *Writer) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		if iw.atBOL && len(iw.prefix) > 0 {
			if _, err = iw.w.Write(iw.prefix); err != nil {
				return n, err
			}
			iw.atBOL = false
		}
		idx := bytes.IndexByte(p, '\n')
		var chunk []byte
		if idx < 0 {
			chunk = p
		} else {
			chunk = p[:idx+1]
			iw.atBOL = true
		}
		nw, werr := iw.w.Write(chunk)
		n += nw
		if werr != nil {
			return n, werr
		}
		p = p[len(chunk):]
	}
	return n, nil
}

// String returns in with prefix prepended to every line.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes returns in with prefix prepended to every line.
func Bytes(prefix, in []byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf, string(prefix))
	w.Write(in)
	return buf.Bytes()
}
