package cloc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Pseudo-entries in cloc's JSON report that are not languages.
const (
	HeaderKey = "header"
	SumKey    = "SUM"
)

// ErrMalformed is wrapped by Parse when the report does not have the
// expected shape.
var ErrMalformed = errors.New("malformed cloc report")

// LanguageLines is the code line count for one language.
type LanguageLines struct {
	Language string
	Code     int
}

// Result is the parsed cloc report for one directory.
type Result struct {
	// Languages holds languages with at least one code line, in the order
	// cloc reported them.
	Languages []LanguageLines
	// Code is the total code line count from the SUM entry.
	Code    int
	Comment int
	Blank   int
	Files   int
}

// Lines returns the measured code lines, or 0 for a nil result.
func (r *Result) Lines() int {
	if r == nil {
		return 0
	}
	return r.Code
}

type entry struct {
	NFiles  *float64 `json:"nFiles"`
	Blank   *float64 `json:"blank"`
	Comment *float64 `json:"comment"`
	Code    *float64 `json:"code"`
}

// Parse decodes cloc --json output. Key order is preserved so reports built
// from identical output are identical. The SUM entry with a numeric code
// field is required.
func Parse(data []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}

	res := &Result{}
	sawSum := false

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, _ := tok.(string)

		if key == HeaderKey {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			continue
		}

		var e entry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, key, err)
		}

		if key == SumKey {
			if e.Code == nil {
				return nil, fmt.Errorf("%w: SUM has no code count", ErrMalformed)
			}
			sawSum = true
			res.Code = toCount(e.Code)
			res.Comment = toCount(e.Comment)
			res.Blank = toCount(e.Blank)
			res.Files = toCount(e.NFiles)
			continue
		}

		if code := toCount(e.Code); code > 0 {
			res.Languages = append(res.Languages, LanguageLines{Language: key, Code: code})
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !sawSum {
		return nil, fmt.Errorf("%w: missing SUM entry", ErrMalformed)
	}
	return res, nil
}

func toCount(v *float64) int {
	if v == nil || *v < 0 || math.IsNaN(*v) {
		return 0
	}
	return int(*v)
}
