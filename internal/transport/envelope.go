package transport

// Envelope is the shape of every JSON response body.
type Envelope struct {
	Success  bool                `json:"success"`
	Resource any                 `json:"resource,omitempty"`
	Total    *int64              `json:"total,omitempty"`
	Error    string              `json:"error,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

func OK(resource any) Envelope {
	return Envelope{Success: true, Resource: resource}
}

func Page(resource any, total int64) Envelope {
	return Envelope{Success: true, Resource: resource, Total: &total}
}

func Fail(msg string, fields map[string][]string) Envelope {
	return Envelope{Success: false, Error: msg, Errors: fields}
}
