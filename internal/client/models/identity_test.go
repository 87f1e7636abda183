package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_DecodesNumericID(t *testing.T) {
	var id Identity
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Ann","email":"a@x.com","role":"user"}`), &id))

	assert.Equal(t, Identity{ID: "1", Name: "Ann", Email: "a@x.com", Role: RoleUser}, id)
}

func TestIdentity_DecodesObjectID(t *testing.T) {
	var id Identity
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"65f0c0ffee","name":"Bob","email":"b@x.com","role":"admin"}`), &id))

	assert.Equal(t, ID("65f0c0ffee"), id.ID)
	assert.True(t, id.IsAdmin())
}

func TestIdentity_PersistedFormRoundTrips(t *testing.T) {
	var original Identity
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"name":"Ann","email":"a@x.com","role":"user"}`), &original))

	b, err := json.Marshal(original)
	require.NoError(t, err)

	var reloaded Identity
	require.NoError(t, json.Unmarshal(b, &reloaded))
	assert.Equal(t, original, reloaded)
}

func TestID_RejectsGarbage(t *testing.T) {
	var id ID
	require.Error(t, json.Unmarshal([]byte(`{}`), &id))
	require.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("").IsAdmin())
}

func TestAuthResponse_Decode(t *testing.T) {
	var resp AuthResponse
	body := `{"success":true,"token":"T1","user":{"id":1,"name":"Ann","email":"a@x.com","role":"user"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "T1", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ann", resp.User.Name)
}

func TestIdentity_Complete(t *testing.T) {
	assert.True(t, Identity{ID: "1", Email: "a@x.com"}.Complete())
	assert.False(t, Identity{ID: "1"}.Complete())
	assert.False(t, Identity{Email: "a@x.com"}.Complete())
	assert.False(t, Identity{}.Complete())
}
