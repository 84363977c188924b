// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtag

import (
	"fmt"
	"strconv"
	"strings"
)

// option is a single key[=value] item of a tag.
type option struct {
	Key      string
	Value    string
	HasValue bool
}

// splitTop splits s on sep, ignoring separators inside quotes or brackets.
func splitTop(s string, sep byte) ([]string, error) {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
			if depth < 0 {
				return nil, &Error{Msg: fmt.Sprintf("unbalanced ']' in %q", s), Err: ErrMalformedLiteral}
			}
		case ch == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, &Error{Msg: fmt.Sprintf("unterminated quote in %q", s), Err: ErrMalformedLiteral}
	}
	if depth != 0 {
		return nil, &Error{Msg: fmt.Sprintf("unbalanced '[' in %q", s), Err: ErrMalformedLiteral}
	}
	return append(parts, s[start:]), nil
}

// parseOptions splits a tag value into its options. Empty items are ignored.
func parseOptions(tag string) ([]option, error) {
	items, err := splitTop(tag, ',')
	if err != nil {
		return nil, err
	}
	var opts []option
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !isIdent(key) {
			return nil, &Error{Msg: fmt.Sprintf("invalid option name %q", key), Err: ErrUnknownOption}
		}
		opts = append(opts, option{
			Key:      key,
			Value:    strings.TrimSpace(value),
			HasValue: hasValue,
		})
	}
	return opts, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

// unquote returns the contents of a single or double quoted literal.
// ok is false if s is not quoted.
func unquote(s string) (v string, ok bool, err error) {
	if len(s) < 2 {
		return "", false, nil
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		v, err := strconv.Unquote(s)
		if err != nil {
			return "", true, &Error{Msg: fmt.Sprintf("invalid string literal %s", s), Err: ErrMalformedLiteral}
		}
		return v, true, nil
	case s[0] == '\'' && s[len(s)-1] == '\'':
		body := s[1 : len(s)-1]
		var sb strings.Builder
		for i := 0; i < len(body); i++ {
			if body[i] == '\\' && i+1 < len(body) {
				i++
			}
			sb.WriteByte(body[i])
		}
		return sb.String(), true, nil
	}
	return "", false, nil
}

// text parses a value that may be bare or quoted.
func text(s string) (string, error) {
	v, ok, err := unquote(s)
	if err != nil {
		return "", err
	}
	if !ok {
		return s, nil
	}
	return v, nil
}

// stringList parses a bracketed list of quoted string literals.
func stringList(s string) ([]string, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, &Error{Msg: fmt.Sprintf("expected a list of string literals, got %s", s), Err: ErrMalformedLiteral}
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	items, err := splitTop(inner, ',')
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, ok, err := unquote(item)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &Error{Msg: fmt.Sprintf("list element %s is not a string literal", item), Err: ErrMalformedLiteral}
		}
		out = append(out, v)
	}
	return out, nil
}
