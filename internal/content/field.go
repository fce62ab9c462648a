package content

import "strings"

// FieldStatus tells whether a field was found in its section body.
type FieldStatus int

const (
	// Missing fields never write to the page.
	Missing FieldStatus = iota
	Present
)

func (s FieldStatus) String() string {
	if s == Present {
		return "present"
	}
	return "missing"
}

// Field is one optional value extracted from a section body.
type Field struct {
	Value  string
	Status FieldStatus
}

// Set returns a present field holding v.
func Set(v string) Field {
	return Field{Value: v, Status: Present}
}

// Ok reports whether the field is present.
func (f Field) Ok() bool {
	return f.Status == Present
}

// positional takes the first n lines of the trimmed body. When the body
// is shorter than n lines every field stays missing.
func positional(body string, n int) []Field {
	fields := make([]Field, n)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < n {
		return fields
	}
	for i := 0; i < n; i++ {
		fields[i] = Set(strings.TrimSpace(lines[i]))
	}
	return fields
}

// keyed finds the first "KEY:value" line. Keys match at the start of a
// line, after optional blanks, so BOOK_TITLE never satisfies TITLE.
func keyed(body, key string) Field {
	prefix := key + ":"
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, prefix) {
			return Set(strings.TrimSpace(line[len(prefix):]))
		}
	}
	return Field{}
}

// rest finds the first "KEY:" line and returns everything after the
// marker up to the end of the body, line breaks included.
func rest(body, key string) Field {
	prefix := key + ":"
	offset := 0
	for _, line := range strings.SplitAfter(body, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, prefix) {
			at := offset + (len(line) - len(trimmed)) + len(prefix)
			return Set(strings.TrimSpace(body[at:]))
		}
		offset += len(line)
	}
	return Field{}
}
