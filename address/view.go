package address

// View is a borrowed, bounds-carrying window onto the address being
// validated. Narrowing a View yields another View over the same buffer, so
// splitting an address into local-part, domain, and labels never copies.
type View struct {
	buf        []byte
	start, end int
}

func newView(buf []byte) View {
	return View{buf, 0, len(buf)}
}

func (v View) Len() int {
	return v.end - v.start
}

func (v View) Empty() bool {
	return v.start == v.end
}

// Offset returns the absolute position of the View's first byte within the
// original input. Diagnostics report positions in these terms.
func (v View) Offset() int {
	return v.start
}

// At returns the byte at position i, relative to the start of the View.
func (v View) At(i int) byte {
	return v.buf[v.start+i]
}

// Bytes returns the bytes covered by the View. The result aliases the
// original input and must not be modified.
func (v View) Bytes() []byte {
	return v.buf[v.start:v.end:v.end]
}

func (v View) String() string {
	return string(v.Bytes())
}

// Slice narrows the View to [i, j), relative to its own start.
func (v View) Slice(i, j int) View {
	if i < 0 || j < i || v.start+j > v.end {
		panic("address: View.Slice out of range")
	}
	return View{v.buf, v.start + i, v.start + j}
}

func (v View) First() byte {
	return v.buf[v.start]
}

func (v View) Last() byte {
	return v.buf[v.end-1]
}

// IsASCII reports whether every byte in the View is below 0x80.
func (v View) IsASCII() bool {
	for i := v.start; i != v.end; i++ {
		if v.buf[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Labels calls f for each dot-delimited sub-view, left to right, stopping
// early if f returns false. Empty labels are passed through so the caller
// can report misplaced delimiters.
func (v View) Labels(f func(label View) bool) {
	begin := v.start
	for i := v.start; i <= v.end; i++ {
		if i == v.end || v.buf[i] == '.' {
			if !f(View{v.buf, begin, i}) {
				return
			}
			begin = i + 1
		}
	}
}
