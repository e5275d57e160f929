package yamlenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Conn    *Env[string] `yaml:"conn"`
	Port    *Env[int]    `yaml:"port"`
	Enabled *Env[bool]   `yaml:"enabled"`
	Missing *Env[string] `yaml:"missing"`
}

func TestUnmarshalLiteralValues(t *testing.T) {
	var s sample
	err := yaml.Unmarshal([]byte("conn: postgres://u:p@localhost:5432/db\nport: 8000\nenabled: true\n"), &s)
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/db", s.Conn.Value)
	assert.Equal(t, 8000, s.Port.Value)
	assert.True(t, s.Enabled.Value)
	assert.Nil(t, s.Missing)
	assert.Equal(t, "", s.Missing.Get())
}

func TestUnmarshalExpandsEnvironment(t *testing.T) {
	t.Setenv("OFFER_TEST_CONN", "postgres://env")
	t.Setenv("OFFER_TEST_PORT", "9001")

	var s sample
	err := yaml.Unmarshal([]byte("conn: ${OFFER_TEST_CONN}\nport: ${OFFER_TEST_PORT}\n"), &s)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", s.Conn.Value)
	assert.Equal(t, "${OFFER_TEST_CONN}", s.Conn.Raw)
	assert.Equal(t, 9001, s.Port.Value)
}

func TestUnmarshalDefaultWhenUnset(t *testing.T) {
	var s sample
	err := yaml.Unmarshal([]byte("port: ${OFFER_TEST_UNSET_PORT:-8000}\nconn: ${OFFER_TEST_UNSET_CONN}\n"), &s)
	require.NoError(t, err)

	assert.Equal(t, 8000, s.Port.Value)
	assert.Equal(t, "", s.Conn.Value)
}

func TestUnmarshalRejectsBadType(t *testing.T) {
	var s sample
	err := yaml.Unmarshal([]byte("port: eighty\n"), &s)
	assert.Error(t, err)
}

func TestUnmarshalRejectsNonScalar(t *testing.T) {
	var s sample
	err := yaml.Unmarshal([]byte("conn:\n  nested: 1\n"), &s)
	assert.Error(t, err)
}
