// Package catalog loads the declarative REST API description: named
// schemas (ordered required-field lists) and request types (HTTP method,
// path segment, schema reference). The catalog is built once at startup
// and is read-only afterwards, so it is safe to share across goroutines.
package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks any failure to parse or validate the API description.
var ErrConfig = errors.New("invalid api info")

// RequestType is one declared request: how to reach it and which payload
// fields it requires. SchemaKeys is resolved from the referenced schema at
// load time.
type RequestType struct {
	Name       string
	Method     string `yaml:"type"`
	URLPath    string `yaml:"url"`
	IDRequired bool   `yaml:"id_required"`
	SchemaName string `yaml:"schema_name"`
	SchemaKeys []string
}

// Mutating reports whether dispatching this request type sends a payload.
func (rt RequestType) Mutating() bool {
	return rt.Method == http.MethodPost || rt.Method == http.MethodPut
}

type apiInfo struct {
	RequestTypes map[string]RequestType `yaml:"request_types"`
	Schemas      map[string][]string    `yaml:"schemas"`
}

// Catalog is the immutable set of request types with their schemas joined
// in.
type Catalog struct {
	requestTypes map[string]RequestType
}

// Load reads and parses an API info YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw API info YAML. It fails if a request
// type references an undefined schema, carries an unknown HTTP method, or
// a schema lists a field twice.
func Parse(data []byte) (*Catalog, error) {
	var info apiInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := validate(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	c := &Catalog{requestTypes: make(map[string]RequestType, len(info.RequestTypes))}
	for name, rt := range info.RequestTypes {
		rt.Name = name
		rt.Method = strings.ToUpper(rt.Method)
		rt.SchemaKeys = append([]string(nil), info.Schemas[rt.SchemaName]...)
		c.requestTypes[name] = rt
	}
	return c, nil
}

func validate(info *apiInfo) error {
	if len(info.RequestTypes) == 0 {
		return fmt.Errorf("at least one request type is required")
	}
	for name, fields := range info.Schemas {
		seen := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			if strings.TrimSpace(field) == "" {
				return fmt.Errorf("schema %s has an empty field name", name)
			}
			if _, exists := seen[field]; exists {
				return fmt.Errorf("schema %s has duplicate field: %s", name, field)
			}
			seen[field] = struct{}{}
		}
	}
	for name, rt := range info.RequestTypes {
		if strings.TrimSpace(rt.URLPath) == "" {
			return fmt.Errorf("request type %s has no url", name)
		}
		if !knownMethod(strings.ToUpper(rt.Method)) {
			return fmt.Errorf("request type %s has unknown method: %q", name, rt.Method)
		}
		if _, ok := info.Schemas[rt.SchemaName]; !ok {
			return fmt.Errorf("request type %s references unknown schema: %s", name, rt.SchemaName)
		}
	}
	return nil
}

func knownMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodHead:
		return true
	}
	return false
}

// Describe resolves a request type by name.
func (c *Catalog) Describe(name string) (RequestType, bool) {
	rt, ok := c.requestTypes[name]
	return rt, ok
}

// RequestNames returns all declared request-type names, sorted.
func (c *Catalog) RequestNames() []string {
	names := make([]string, 0, len(c.requestTypes))
	for name := range c.requestTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
