package collection

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Header is one key/value record from the list-shaped header form.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// HeaderSet accepts both header shapes found in collection files: an object
// map of name to value, or an ordered list of {key, value} records. Both
// normalize to the same ordered pair list here, so consumers never branch
// on shape again.
type HeaderSet []Header

func (h *HeaderSet) UnmarshalJSON(data []byte) error {
	var list []Header
	if err := json.Unmarshal(data, &list); err == nil {
		*h = list
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("headers must be an object or a list of {key, value} records")
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make(HeaderSet, 0, len(keys))
	for _, k := range keys {
		set = append(set, Header{Key: k, Value: m[k]})
	}
	*h = set
	return nil
}

func (h HeaderSet) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Header(h))
}
