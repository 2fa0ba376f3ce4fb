package unify

import (
	"bytes"

	"github.com/sirkon/go-format"
)

// Collector line by line collector
type Collector struct {
	buf bytes.Buffer
}

// Line puts format expression
func (r *Collector) Line(line string, p ...interface{}) {
	r.buf.WriteString(format.Formatp(line, p...))
	r.buf.WriteByte('\n')
}

// Expr puts format expression without line break
func (r *Collector) Expr(expr string, p ...interface{}) {
	r.buf.WriteString(format.Formatp(expr, p...))
}

// Raw puts raw bytes
func (r *Collector) Raw(data []byte) {
	r.buf.Write(data)
}

// Newl puts new line
func (r *Collector) Newl() {
	r.buf.WriteByte('\n')
}

// Bytes returns collected data
func (r *Collector) Bytes() []byte {
	return r.buf.Bytes()
}

// String returns collected data
func (r *Collector) String() string {
	return r.buf.String()
}
