package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		tag  string
		want Platform
	}{
		{"oncyber", PlatformOncyber},
		{"hyperfy", PlatformHyperfy},
		{"substrata", PlatformSubstrata},
		{"  hyperfy ", PlatformHyperfy},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParsePlatform(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlatformRejectsUnknownTags(t *testing.T) {
	for _, tag := range []string{"", "user", "Oncyber", "decentraland"} {
		_, err := ParsePlatform(tag)
		assert.ErrorIs(t, err, ErrInvalidPlatform, "tag %q", tag)
	}
}

func TestPlatformLookup(t *testing.T) {
	lookup, err := PlatformOncyber.Lookup()
	require.NoError(t, err)
	assert.Equal(t, Lookup{Mode: LookupByExternalID, Field: FieldOncyberID}, lookup)

	lookup, err = PlatformHyperfy.Lookup()
	require.NoError(t, err)
	assert.Equal(t, Lookup{Mode: LookupByExternalID, Field: FieldHyperfyID}, lookup)

	lookup, err = PlatformSubstrata.Lookup()
	require.NoError(t, err)
	assert.Equal(t, LookupByInternalID, lookup.Mode)
	assert.Empty(t, lookup.Field)
}

func TestPlatformLookupCoversEveryPlatform(t *testing.T) {
	for _, p := range Platforms() {
		_, err := p.Lookup()
		assert.NoError(t, err, p.String())

		parsed, err := ParsePlatform(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

func TestPlatformLookupRejectsZeroValue(t *testing.T) {
	var p Platform
	_, err := p.Lookup()
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestPlayerExistsErrorMessage(t *testing.T) {
	err := &PlayerExistsError{Platform: PlatformOncyber, ExternalID: "abc-123"}

	assert.ErrorIs(t, err, ErrPlayerExists)
	assert.Contains(t, err.Error(), "abc-123")
	assert.Contains(t, err.Error(), "oncyber")
}

func TestPlayerExternalID(t *testing.T) {
	p := &Player{}
	p.SetExternalID(FieldHyperfyID, "hf-1")

	assert.Equal(t, "hf-1", p.HyperfyID)
	assert.Equal(t, "hf-1", p.ExternalID(FieldHyperfyID))
	assert.Empty(t, p.ExternalID(FieldOncyberID))
}
