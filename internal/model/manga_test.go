package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAgeRating(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  AgeRating
	}{
		{"canonical everyone", "EVERYONE", RatingEveryone},
		{"canonical teen", "TEEN", RatingTeen},
		{"canonical mature", "MATURE", RatingMature},
		{"canonical adult", "ADULT", RatingAdult},
		{"legacy G", "G", RatingEveryone},
		{"legacy 13+", "13+", RatingTeen},
		{"legacy 16+", "16+", RatingMature},
		{"legacy 18+", "18+", RatingAdult},
		{"empty falls back", "", RatingEveryone},
		{"garbage falls back", "PG-13", RatingEveryone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAgeRating(tt.input))
		})
	}
}
