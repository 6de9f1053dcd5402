package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the registry decoder.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks a decoder from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates the registry at path. The whole registry is
// validated before it is returned; on error no records are returned.
func Load(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	projects, err := Parse(data, FormatFor(path))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return projects, nil
}

// Parse decodes and validates registry content.
func Parse(data []byte, format Format) ([]Project, error) {
	var root any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, &ParseError{Err: err}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return nil, &ParseError{Err: err}
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("trailing data after registry")}
		}
	}

	items, ok := root.([]any)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("root must be a list of projects, got %s", kindOf(root))}
	}

	projects := make([]Project, 0, len(items))
	seen := make(map[int]int, len(items))
	for i, item := range items {
		p, err := validateRecord(i, item)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[p.DayIndex]; dup {
			return nil, &ValidationError{
				Index:  i,
				Record: describe(p.DayIndex, p.Name),
				Reason: fmt.Sprintf("dayIndex %d already used by record at index %d", p.DayIndex, prev),
			}
		}
		seen[p.DayIndex] = i
		projects = append(projects, p)
	}
	return projects, nil
}

// validateRecord converts one decoded record into a Project, enforcing the
// required fields in the order dayIndex, name, status.
func validateRecord(i int, item any) (Project, error) {
	rec, ok := item.(map[string]any)
	if !ok {
		return Project{}, &ValidationError{Index: i, Reason: fmt.Sprintf("record must be an object, got %s", kindOf(item))}
	}

	var p Project

	raw, present := rec["dayIndex"]
	if !present || raw == nil {
		return p, &ValidationError{Index: i, Record: nameOf(rec), Reason: "missing dayIndex"}
	}
	day, why := toInt(raw)
	switch why {
	case "":
	case "out of range":
		return p, &ValidationError{Index: i, Record: nameOf(rec), Reason: fmt.Sprintf("dayIndex out of range, got %v", raw)}
	default:
		return p, &ValidationError{Index: i, Record: nameOf(rec), Reason: fmt.Sprintf("dayIndex must be an integer, got %v", raw)}
	}
	if day < 1 {
		return p, &ValidationError{Index: i, Record: nameOf(rec), Reason: fmt.Sprintf("dayIndex must be positive, got %d", day)}
	}
	p.DayIndex = day

	name, reason := requiredString(rec, "name")
	if reason != "" {
		return p, &ValidationError{Index: i, Record: describe(day, ""), Reason: reason}
	}
	p.Name = name

	status, reason := requiredString(rec, "status")
	if reason != "" {
		return p, &ValidationError{Index: i, Record: describe(day, name), Reason: reason}
	}
	p.Status = status

	if raw, present := rec["type"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return p, &ValidationError{Index: i, Record: describe(day, name), Reason: "type must be a string"}
		}
		p.Type = s
	}

	if raw, present := rec["tags"]; present && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return p, &ValidationError{Index: i, Record: describe(day, name), Reason: "tags must be a list of strings"}
		}
		seen := make(map[string]bool, len(list))
		for _, t := range list {
			s, ok := t.(string)
			if !ok {
				return p, &ValidationError{Index: i, Record: describe(day, name), Reason: fmt.Sprintf("tag %v is not a string", t)}
			}
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			p.Tags = append(p.Tags, s)
		}
	}

	return p, nil
}

// requiredString returns the field value or a non-empty reason.
func requiredString(rec map[string]any, field string) (string, string) {
	raw, present := rec[field]
	if !present || raw == nil {
		return "", "missing " + field
	}
	s, ok := raw.(string)
	if !ok {
		return "", field + " must be a string"
	}
	if s == "" {
		return "", "missing " + field
	}
	return s, ""
}

// toInt accepts JSON numbers and YAML integers that hold a whole value
// within the int range. The reason is empty on success.
func toInt(v any) (int, string) {
	switch n := v.(type) {
	case int:
		return n, ""
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, "out of range"
		}
		return int(n), ""
	case uint64:
		if n > math.MaxInt {
			return 0, "out of range"
		}
		return int(n), ""
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			return i, ""
		}
		f, err := n.Float64()
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, "out of range"
			}
			return 0, "not an integer"
		}
		return floatToInt(f)
	default:
		return 0, "not an integer"
	}
}

func floatToInt(f float64) (int, string) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, "not an integer"
	}
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
	if math.IsInf(f, 0) || f < math.MinInt || f >= math.MaxInt {
		return 0, "out of range"
	}
	return int(f), ""
}

func nameOf(rec map[string]any) string {
	if s, ok := rec["name"].(string); ok {
		return s
	}
	return ""
}

func describe(day int, name string) string {
	switch {
	case day > 0 && name != "":
		return fmt.Sprintf("day %d %q", day, name)
	case day > 0:
		return fmt.Sprintf("day %d", day)
	default:
		return name
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
