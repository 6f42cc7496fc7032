package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	stored := &Run{NoColor: true, Locale: "de"}

	tests := []struct {
		name   string
		ctx    context.Context
		wantOk bool
		want   *Run
	}{
		{
			name:   "with settings",
			ctx:    IntoContext(context.Background(), stored),
			wantOk: true,
			want:   stored,
		},
		{
			name: "without settings",
			ctx:  context.Background(),
		},
		{
			name: "nil settings",
			ctx:  IntoContext(context.Background(), nil),
		},
		{
			name: "wrong type",
			ctx:  context.WithValue(context.Background(), settingsContextKey, "wrong type"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromContext(tt.ctx)
			assert.Equal(t, tt.wantOk, ok)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestFromContextOrDefault(t *testing.T) {
	assert.Equal(t, NewCliParams(), FromContextOrDefault(context.Background()))

	stored := &Run{Platform: "mac"}
	assert.Same(t, stored, FromContextOrDefault(IntoContext(context.Background(), stored)))
}
