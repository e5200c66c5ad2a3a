package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()

	require.Len(t, otp, 6)
	_, err := strconv.Atoi(otp)
	assert.NoError(t, err)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Web Development":        "web-development",
		"  Data Science  ":       "data-science",
		"C++ & Go":               "c-go",
		"Machine Learning 101":   "machine-learning-101",
		"UPPER":                  "upper",
		"already-a-slug":         "already-a-slug",
		"trailing punctuation!!": "trailing-punctuation",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "Slugify(%q)", input)
	}
}

func TestSignUploadParamsIsOrderIndependent(t *testing.T) {
	a := SignUploadParams(map[string]string{
		"timestamp": "1700000000",
		"folder":    "course",
	}, "secret")
	b := SignUploadParams(map[string]string{
		"folder":    "course",
		"timestamp": "1700000000",
	}, "secret")

	require.Len(t, a, 40) // hex SHA-1
	assert.Equal(t, a, b)

	// Different secret, different signature.
	c := SignUploadParams(map[string]string{
		"timestamp": "1700000000",
		"folder":    "course",
	}, "other")
	assert.NotEqual(t, a, c)
}

func TestUploadSignature(t *testing.T) {
	payload := UploadSignature("lectures", "demo-cloud", "api-key", "secret")

	assert.Equal(t, "lectures", payload["folder"])
	assert.Equal(t, "demo-cloud", payload["cloud_name"])
	assert.Equal(t, "api-key", payload["api_key"])

	timestamp, ok := payload["timestamp"].(int64)
	require.True(t, ok)

	want := SignUploadParams(map[string]string{
		"timestamp": strconv.FormatInt(timestamp, 10),
		"folder":    "lectures",
	}, "secret")
	assert.Equal(t, want, payload["signature"])
}
