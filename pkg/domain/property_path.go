package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PropertyPathSegment is one dotted component of a path, optionally indexed.
type PropertyPathSegment struct {
	Key   string
	Index *int
}

var (
	validPathChars   = regexp.MustCompile(`^[a-zA-Z0-9._\-\[\]]+$`)
	invalidDotLayout = regexp.MustCompile(`\.\.|\.\[|^\.|\.+$`)
	indexedSegment   = regexp.MustCompile(`^(.+?)\[(\d+)\]$`)
)

// ParsePropertyPath breaks "data.boards[0].items_page.items" into segments.
// An empty path yields no segments and addresses the root value.
func ParsePropertyPath(path string) ([]PropertyPathSegment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return []PropertyPathSegment{}, nil
	}

	if !validPathChars.MatchString(path) {
		return nil, fmt.Errorf("invalid characters in path: '%s'", path)
	}

	if invalidDotLayout.MatchString(path) {
		return nil, fmt.Errorf("invalid dot placement in path: '%s'", path)
	}

	var segments []PropertyPathSegment

	for _, part := range strings.Split(path, ".") {
		matches := indexedSegment.FindStringSubmatch(part)
		if len(matches) == 3 {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, fmt.Errorf("invalid array index '%s' in path '%s'", matches[2], path)
			}

			segments = append(segments, PropertyPathSegment{Key: matches[1], Index: &index})
			continue
		}

		if strings.ContainsAny(part, "[]") {
			return nil, fmt.Errorf("invalid array notation in path segment '%s'", part)
		}

		segments = append(segments, PropertyPathSegment{Key: part})
	}

	return segments, nil
}

// LookupPath resolves path against a decoded JSON value. A present key holding
// JSON null counts as absent.
func LookupPath(source any, path string) (any, bool) {
	segments, err := ParsePropertyPath(path)
	if err != nil {
		return nil, false
	}

	value, ok := lookupSegments(source, segments)
	if !ok || value == nil {
		return nil, false
	}

	return value, true
}

func lookupSegments(current any, segments []PropertyPathSegment) (any, bool) {
	if len(segments) == 0 {
		return current, true
	}

	segment := segments[0]

	object, ok := current.(map[string]any)
	if !ok {
		return nil, false
	}

	value, exists := object[segment.Key]
	if !exists {
		return nil, false
	}

	if segment.Index == nil {
		return lookupSegments(value, segments[1:])
	}

	arr, ok := value.([]any)
	if !ok || *segment.Index >= len(arr) {
		return nil, false
	}

	return lookupSegments(arr[*segment.Index], segments[1:])
}
