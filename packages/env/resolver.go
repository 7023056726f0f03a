package env

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var variablePattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Substitute replaces every {{name}} token with the matching environment
// value. Unresolved tokens are left verbatim, braces included. Lookup goes
// through the map's own keys only; dynamic $-variables are generated per
// occurrence, Postman style.
func Substitute(template string, vars map[string]string) string {
	if template == "" {
		return ""
	}
	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])

		if strings.HasPrefix(name, "$") {
			if val, ok := dynamicVariable(name); ok {
				return val
			}
			return match
		}

		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})
}

// SubstituteAll applies Substitute to every value of a map.
func SubstituteAll(values map[string]string, vars map[string]string) map[string]string {
	result := make(map[string]string, len(values))
	for k, v := range values {
		result[k] = Substitute(v, vars)
	}
	return result
}

// dynamicVariable resolves the Postman dynamic variables the runner
// supports: $guid, $timestamp and $randomInt.
func dynamicVariable(name string) (string, bool) {
	switch name {
	case "$guid":
		return uuid.NewString(), true
	case "$timestamp":
		return fmt.Sprintf("%d", time.Now().Unix()), true
	case "$randomInt":
		return fmt.Sprintf("%d", rand.Intn(1001)), true
	}
	return "", false
}
