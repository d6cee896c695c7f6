package config

import (
	"errors"
	"io/fs"
	"strings"
)

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
