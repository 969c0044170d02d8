package logtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFieldPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"token", []string{"token"}},
		{"req.headers.authorization", []string{"req", "headers", "authorization"}},
		{"*.password", []string{"*", "password"}},
		{"users[*].ssn", []string{"users", "[*]", "ssn"}},
		{"tokens[0]", []string{"tokens", "[0]"}},
		{"a[2].b[*]", []string{"a", "[2]", "b", "[*]"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFieldPath(tt.path))
		})
	}
}

func TestRedactorRemovesMatchedPaths(t *testing.T) {
	r := newRedactor([]string{"token", "req.headers.authorization", "users[*].ssn"})

	payload := map[string]any{
		"token": "tok_123",
		"user":  "alice",
		"req": map[string]any{
			"headers": map[string]any{
				"authorization": "Bearer xyz",
				"accept":        "application/json",
			},
		},
		"users": []any{
			map[string]any{"name": "bob", "ssn": "111-22-3333"},
			map[string]any{"name": "eve", "ssn": "444-55-6666"},
		},
	}

	out := r.apply(payload)

	// Matched fields are gone, not masked.
	assert.NotContains(t, out, "token")
	headers := out["req"].(map[string]any)["headers"].(map[string]any)
	assert.NotContains(t, headers, "authorization")
	for _, u := range out["users"].([]any) {
		assert.NotContains(t, u.(map[string]any), "ssn")
	}

	// Siblings survive.
	assert.Equal(t, "alice", out["user"])
	assert.Equal(t, "application/json", headers["accept"])
	assert.Equal(t, "bob", out["users"].([]any)[0].(map[string]any)["name"])
}

func TestRedactorWildcardKey(t *testing.T) {
	r := newRedactor([]string{"*.password"})
	out := r.apply(map[string]any{
		"db":    map[string]any{"password": "hunter2", "host": "localhost"},
		"cache": map[string]any{"password": "s3cret"},
		"name":  "svc",
	})

	assert.NotContains(t, out["db"].(map[string]any), "password")
	assert.NotContains(t, out["cache"].(map[string]any), "password")
	assert.Equal(t, "localhost", out["db"].(map[string]any)["host"])
	assert.Equal(t, "svc", out["name"])
}

func TestRedactorRemovesArrayElement(t *testing.T) {
	r := newRedactor([]string{"tokens[0]"})
	out := r.apply(map[string]any{"tokens": []any{"a", "b", "c"}})
	assert.Equal(t, []any{"b", "c"}, out["tokens"])
}

func TestRedactorLeavesCallerPayloadUntouched(t *testing.T) {
	r := newRedactor([]string{"secret"})
	payload := map[string]any{"secret": "x", "keep": 1}

	out := r.apply(payload)

	require.NotContains(t, out, "secret")
	assert.Equal(t, "x", payload["secret"], "input payload must not be mutated")
}

func TestRedactorExtend(t *testing.T) {
	var base *redactor
	r := base.extend([]string{"a"})
	r = r.extend([]string{"b"})

	out := r.apply(map[string]any{"a": 1, "b": 2, "c": 3})
	assert.Equal(t, map[string]any{"c": 3}, out)
}

func TestNilRedactorPassesThrough(t *testing.T) {
	var r *redactor
	payload := map[string]any{"a": 1}
	assert.Equal(t, payload, r.apply(payload))
	assert.Nil(t, newRedactor(nil))
}
