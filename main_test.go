package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashCommand(t *testing.T) {
	var out bytes.Buffer
	hashCmd.SetOut(&out)
	hashCmd.SetIn(strings.NewReader("from-stdin\n"))

	require.NoError(t, hashPassword(hashCmd, nil))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("from-stdin")))

	out.Reset()
	require.NoError(t, hashPassword(hashCmd, []string{"abc123"}))
	hash = strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("abc123")))
}

func TestHashCommandRejectsEmpty(t *testing.T) {
	hashCmd.SetIn(strings.NewReader("\n"))
	assert.Error(t, hashPassword(hashCmd, nil))
}

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitOrigins(" http://a, ,http://b "))
}
