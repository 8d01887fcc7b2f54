package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Buyer@Example.com", "buyer@example.com"},
		{"  buyer@example.com  ", "buyer@example.com"},
		{" MiXeD@CaSe.Com ", "mixed@case.com"},
		{"already@normal.com", "already@normal.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
	}
}

func TestUserMapResolve(t *testing.T) {
	users := UserMap{"dustin.oreilly": "5af08d90-6dac-434f-8dbe-c7aa76336eaa"}

	id, err := users.Resolve("dustin.oreilly")
	require.NoError(t, err)
	assert.Equal(t, "5af08d90-6dac-434f-8dbe-c7aa76336eaa", id)

	_, err = users.Resolve("nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody")
}

func TestUserMapResolveOptional(t *testing.T) {
	users := UserMap{"joe.furfaro": "e7464b21-e7b1-4e85-b908-afcf4b21baaf"}

	id := users.ResolveOptional("joe.furfaro")
	require.NotNil(t, id)
	assert.Equal(t, "e7464b21-e7b1-4e85-b908-afcf4b21baaf", *id)

	assert.Nil(t, users.ResolveOptional("nobody"))
}

func TestCustomerIndexResolve(t *testing.T) {
	index := CustomerIndex{"buyer@example.com": "customer-uuid-1"}

	id, err := index.Resolve(" Buyer@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "customer-uuid-1", id)

	_, err = index.Resolve("stranger@example.com")
	require.Error(t, err)
}
