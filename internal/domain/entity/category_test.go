package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"motors", "motors", true},
		{"Motors", "motors", true},
		{"  PROPERTY ", "property", true},
		{"jobs", "jobs", true},
		{"boats", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeCategory(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestCoverImagePrefersDisplayOrderZero(t *testing.T) {
	listing := &Listing{Images: []ListingImage{
		{URL: "b.jpg", DisplayOrder: 1},
		{URL: "a.jpg", DisplayOrder: 0},
	}}
	assert.Equal(t, "a.jpg", listing.CoverImage())

	assert.Empty(t, (&Listing{}).CoverImage())
}
