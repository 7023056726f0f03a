package collection

import (
	"encoding/json"
	"fmt"
)

// Postman v2.1 export structures. Only the subset the runner consumes is
// modeled: folder/request items, headers, raw bodies and test events.

type postmanExport struct {
	Info postmanInfo   `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanInfo struct {
	Name string `json:"name"`
}

type postmanItem struct {
	Name    string          `json:"name"`
	Item    []postmanItem   `json:"item,omitempty"`
	Request *postmanRequest `json:"request,omitempty"`
	Event   []Event         `json:"event,omitempty"`
}

type postmanRequest struct {
	Method string       `json:"method"`
	Header []Header     `json:"header,omitempty"`
	URL    postmanURL   `json:"url"`
	Body   *postmanBody `json:"body,omitempty"`
}

// postmanURL accepts both the string and the expanded {raw: ...} form.
type postmanURL string

func (u *postmanURL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*u = postmanURL(raw)
		return nil
	}

	var obj struct {
		Raw string `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("url must be a string or an object with a raw field")
	}
	*u = postmanURL(obj.Raw)
	return nil
}

type postmanBody struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw"`
}

// FromPostman normalizes a raw Postman v2.1 export into the canonical tree.
// Items carrying a request become requests; items carrying child items
// become folders, recursively.
func FromPostman(data []byte) (*Collection, error) {
	var export postmanExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing Postman collection: %w", err)
	}

	col := &Collection{Name: export.Info.Name}
	col.Requests, col.Folders = convertItems(export.Item)
	return col, nil
}

func convertItems(items []postmanItem) ([]Request, []Folder) {
	var requests []Request
	var folders []Folder

	for _, item := range items {
		if item.Request != nil {
			requests = append(requests, convertRequest(item))
			continue
		}
		folder := Folder{Name: item.Name}
		folder.Requests, folder.Folders = convertItems(item.Item)
		folders = append(folders, folder)
	}

	return requests, folders
}

func convertRequest(item postmanItem) Request {
	req := Request{
		Name:    item.Name,
		Method:  item.Request.Method,
		URL:     string(item.Request.URL),
		Headers: HeaderSet(item.Request.Header),
		Events:  item.Event,
	}
	if item.Request.Body != nil && item.Request.Body.Mode == "raw" {
		req.Body = item.Request.Body.Raw
	}
	return req
}
