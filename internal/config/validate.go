package config

import (
	"errors"
	"slices"

	"github.com/dshills/strata/internal/config/loader"
	"github.com/dshills/strata/internal/logging"
)

type intRule struct {
	path     string
	min, max int
}

var intRules = []intRule{
	{"editor.tabSize", 1, 32},
	{"editor.maxSafeLineWidth", 1, 1 << 24},
	{"editor.largeFileThreshold", 1, 1 << 30},
	{"view.composeWidth", 0, 1 << 16},
	{"view.scrollMargin", 0, 1 << 16},
}

var boolPaths = []string{
	"editor.lineWrap",
	"editor.showWhitespace",
	"editor.revealCodes",
	"view.scrollbar",
	"view.diffHeaders",
}

// validate checks the settings strata reads. Unknown keys are allowed.
func validate(data map[string]any) error {
	var errs []error

	for _, r := range intRules {
		v, ok := loader.GetByPath(data, r.path)
		if !ok {
			continue
		}
		n, err := asInt(r.path, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if n < r.min || n > r.max {
			errs = append(errs, &ValidationError{Path: r.path, Message: "out of range", Value: n})
		}
	}

	for _, p := range boolPaths {
		if v, ok := loader.GetByPath(data, p); ok {
			if _, err := asBool(p, v); err != nil {
				errs = append(errs, err)
			}
		}
	}

	errs = append(errs, checkEnum(data, "editor.lineNumbers", LineNumberModes))
	errs = append(errs, checkEnum(data, "view.colorMode", ColorModes))

	if v, ok := loader.GetByPath(data, "logging.level"); ok {
		s, err := asString("logging.level", v)
		if err == nil {
			if _, known := logging.ParseLevel(s); !known {
				err = &ValidationError{Path: "logging.level", Message: "unknown level", Value: s}
			}
		}
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func checkEnum(data map[string]any, path string, allowed []string) error {
	v, ok := loader.GetByPath(data, path)
	if !ok {
		return nil
	}
	s, err := asString(path, v)
	if err != nil {
		return err
	}
	if !slices.Contains(allowed, s) {
		return &ValidationError{Path: path, Message: "must be one of " + joinQuoted(allowed), Value: s}
	}
	return nil
}

func joinQuoted(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += `"` + v + `"`
	}
	return out
}
