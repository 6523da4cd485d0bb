package main

import (
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsFilter(t *testing.T) {
	tags := []string{"v1.0.0", "1.2.0", "notaversion", "", "v"}
	assert.Equal(t, []string{"1.0.0", "1.2.0"}, TagsFilter(tags, nil))
}

// stripping the 'v' prefix is idempotent: a prefixed and an unprefixed
// tag come out the same
func TestTagsFilterVPrefix(t *testing.T) {
	assert.Equal(t, TagsFilter([]string{"1.2.3"}, nil), TagsFilter([]string{"v1.2.3"}, nil))
}

func TestTagsFilterConstraint(t *testing.T) {
	c, err := semver.NewConstraint("<2.0.0")
	require.NoError(t, err)
	tags := []string{"1.0.0", "1.9.9", "2.0.0", "2.1.0"}
	assert.Equal(t, []string{"1.0.0", "1.9.9"}, TagsFilter(tags, c))
}

func TestVersionsMax(t *testing.T) {
	// numeric ordering, not lexical
	max, err := VersionsMax([]string{"2.0.0", "10.0.0", "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0", max)
}

func TestVersionsMaxEmpty(t *testing.T) {
	max, err := VersionsMax(nil)
	require.NoError(t, err)
	assert.Equal(t, "", max)
}

func TestVersionsMaxPartialFails(t *testing.T) {
	_, err := VersionsMax([]string{"1.0.0", "1.2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.2")
}

func TestErrKnownHostsWrap(t *testing.T) {
	err := ErrKnownHostsWrap(errors.New("ssh: handshake failed: knownhosts: key is unknown"))
	assert.Contains(t, err.Error(), "ssh-keyscan github.com")

	plain := errors.New("repository not found")
	assert.Equal(t, plain, ErrKnownHostsWrap(plain))

	assert.NoError(t, ErrKnownHostsWrap(nil))
}
