package transport

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want Number
		kind string
	}{
		{body: `{"tip":10}`, want: "10"},
		{body: `{"tip":"15"}`, want: "15"},
		{body: `{"tip":7.5}`, want: "7.5"},
		{body: `{"tip":null}`, want: ""},
		{body: `{"tip":"ten"}`, kind: "string"},
		{body: `{"tip":true}`, kind: "bool"},
		{body: `{"tip":[1]}`, kind: "array"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()

			var req OrderRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.kind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, req.Tip)
				return
			}

			var ute *json.UnmarshalTypeError
			require.True(t, errors.As(err, &ute), "got %v", err)
			assert.Equal(t, "tip", ute.Field)
			assert.Equal(t, tt.kind, ute.Value)
		})
	}
}
