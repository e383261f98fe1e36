// Package jsonc decodes JSON documents that carry //-style line comments,
// the format the menu feed is written in.
package jsonc

import (
	"encoding/json"
	"regexp"
)

// Comments run from // to the end of the line. The feed never puts // inside
// a string value, so a plain line match is sufficient.
var lineComment = regexp.MustCompile(`//.*`)

// Strip removes line comments, leaving standard JSON.
func Strip(data []byte) []byte {
	return lineComment.ReplaceAll(data, nil)
}

// Unmarshal strips comments and decodes the remainder into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(Strip(data), v)
}
