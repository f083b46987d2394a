package todo

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewTodoID returns a time-ordered random ID (UUIDv7).
func NewTodoID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewProjectID derives a slug from name and suffixes it with -1, -2, ...
// until it is not a key of existing. A name without any [a-z0-9] characters
// yields "".
func NewProjectID[V any](name string, existing map[string]V) string {
	base := slugify(name)
	if base == "" {
		return ""
	}

	id := base
	for n := 1; ; n++ {
		if _, taken := existing[id]; !taken {
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
