// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pnum-lookup/pkg/types"
)

func TestFindAction(t *testing.T) {
	tests := []struct {
		url  string
		want types.Action
	}{
		{"http://0.0.0.0:5000/pnums/isvalid/199001011234", types.ActionIsValid},
		{"http://0.0.0.0:5000/pnums/isregistered/199001011234", types.ActionIsRegistered},
		{"http://0.0.0.0:5000/pnums/gender/199001011234", types.ActionGender},
		{"http://0.0.0.0:5000/pnums/age/199001011234", types.ActionAge},
		{"http://0.0.0.0:5000/pnums/listall", types.ActionListAll},
		{"http://0.0.0.0:5000/pnums/listbygroups", types.ActionListByGroups},
		{"http://0.0.0.0:5000/pnums/unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, FindAction(tt.url))
		})
	}
}

func TestFindPnum(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"pnum segment", "http://0.0.0.0:5000/pnums/gender/199001011234", "199001011234"},
		{"listing has five parts", "http://0.0.0.0:5000/pnums/listall", ""},
		{"deeper path has seven parts", "http://0.0.0.0:5000/api/pnums/gender/199001011234", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindPnum(tt.url))
		})
	}
}

func TestFields_KeepsNumbers(t *testing.T) {
	r := &Response{Body: []byte(`{"pnum":"199001011234","age":34}`)}
	fields, err := r.Fields()
	require.NoError(t, err)
	assert.Equal(t, json.Number("34"), fields["age"])
	assert.Equal(t, "34", FieldString(fields["age"]))
}

func TestFields_InvalidJSON(t *testing.T) {
	r := &Response{Body: []byte(`<html>oops</html>`)}
	_, err := r.Fields()
	assert.Error(t, err)

	_, ok := r.ErrorMessage()
	assert.False(t, ok)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "male", FieldString("male"))
	assert.Equal(t, "true", FieldString(true))
	assert.Equal(t, "null", FieldString(nil))
	assert.Equal(t, `["a","b"]`, FieldString([]any{"a", "b"}))
}
