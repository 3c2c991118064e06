package domain_test

import (
	"testing"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlots_PreservesOrder(t *testing.T) {
	urls := []string{"https://b.example", "https://a.example", "local/page.html"}
	slots, err := domain.NewSlots(urls)
	require.NoError(t, err)
	require.Len(t, slots, len(urls))
	for i, s := range slots {
		assert.Equal(t, domain.Slot{Index: i, URL: urls[i]}, s)
	}
}

func TestNewSlots_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		urls  []string
		field string
	}{
		{"empty list", nil, "urls"},
		{"empty url", []string{"https://a.example", ""}, "urls[1]"},
		{"missing host", []string{"https://"}, "urls[0]"},
		{"bad escape", []string{"https://a.example/%zz"}, "urls[0]"},
		{"unsupported scheme", []string{"javascript:alert(1)"}, "urls[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewSlots(tt.urls)
			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, `unknown transition "spin"`, (&domain.UnknownTransitionError{Name: "spin"}).Error())
	assert.Equal(t, "configuration error: interval: must be positive, got 0",
		(&domain.ConfigurationError{Field: "interval", Reason: "must be positive, got 0"}).Error())
	assert.Contains(t, (&domain.RenderError{Op: "mount", Slot: -1}).Error(), "render error: mount")
}
