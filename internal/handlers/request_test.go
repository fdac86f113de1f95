package handlers

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func decodeBody(t *testing.T, raw string) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

func TestIDField(t *testing.T) {
	seven := uint64(7)

	testCases := []struct {
		name    string
		body    string
		wantID  *uint64
		wantSet bool
		wantErr bool
	}{
		{"absent", `{}`, nil, false, false},
		{"null disconnects", `{"cropId":null}`, nil, true, false},
		{"zero disconnects", `{"cropId":0}`, nil, true, false},
		{"empty string disconnects", `{"cropId":""}`, nil, true, false},
		{"number", `{"cropId":7}`, &seven, true, false},
		{"numeric string", `{"cropId":"7"}`, &seven, true, false},
		{"negative", `{"cropId":-1}`, nil, true, true},
		{"fraction", `{"cropId":2.5}`, nil, true, true},
		{"word", `{"cropId":"seven"}`, nil, true, true},
		{"boolean", `{"cropId":true}`, nil, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, set, err := idField(decodeBody(t, tc.body), "cropId")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSet, set)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestNumberField(t *testing.T) {
	id, err := numberField(decodeBody(t, `{"lat":-31.5}`), "lat")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, -31.5, *id)

	v, err := numberField(decodeBody(t, `{"lat":" 12.25 "}`), "lat")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 12.25, *v)

	v, err = numberField(decodeBody(t, `{"lat":null}`), "lat")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = numberField(decodeBody(t, `{"lat":"NaN"}`), "lat")
	assert.Error(t, err)

	_, err = numberField(decodeBody(t, `{"lat":[1]}`), "lat")
	assert.EqualError(t, err, "lat must be a number")
}

func TestStringField(t *testing.T) {
	s, err := stringField(decodeBody(t, `{"name":"North"}`), "name")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "North", *s)

	s, err = stringField(decodeBody(t, `{}`), "name")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = stringField(decodeBody(t, `{"name":3}`), "name")
	assert.EqualError(t, err, "name must be a string")
}
