package csstheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	valid := Config{
		SourceDir:  "styles",
		Includes:   []string{"**/*.theme.yaml"},
		OutputFile: "dist/theme.css",
	}
	require.NoError(t, validateStruct(valid))

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing output",
			mutate: func(c *Config) { c.OutputFile = "" },
			want:   "invalid config: outputfile failed validation for tag 'required'",
		},
		{
			name:   "no includes",
			mutate: func(c *Config) { c.Includes = nil },
			want:   "invalid config: includes failed validation for tag 'required'",
		},
		{
			name:   "empty include pattern",
			mutate: func(c *Config) { c.Includes = []string{""} },
			want:   "invalid config: includes[0] failed validation for tag 'required'",
		},
		{
			name:   "unknown theme keys",
			mutate: func(c *Config) { c.ThemeKeys = "both" },
			want:   "invalid config: themekeys failed validation for tag 'oneof'",
		},
		{
			name:   "negative cache size",
			mutate: func(c *Config) { c.CacheSize = -1 },
			want:   "invalid config: cachesize failed validation for tag 'gte'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			config.Includes = append([]string(nil), valid.Includes...)
			tt.mutate(&config)
			err := validateStruct(config)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidatorInstanceShared(t *testing.T) {
	assert.Same(t, validatorInstance(), validatorInstance())
}
