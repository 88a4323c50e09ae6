package bytesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ByteSize
		wantErr bool
	}{
		{"4096", 4096, false},
		{"4Ki", 4 * KiB, false},
		{"4KiB", 4 * KiB, false},
		{"4kb", 4 * KB, false},
		{" 1 Mi ", MiB, false},
		{"0.5Ki", 512, false},
		{"1G", GB, false},
		{"512B", 512, false},
		{"", 0, true},
		{"abc", 0, true},
		{"4Xi", 0, true},
		{"-4Ki", 0, true},
		{"99999999999999999999Gi", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringRoundTrips(t *testing.T) {
	for _, v := range []ByteSize{0, 1, 1000, 4096, 3 * MiB, 2 * GiB, 4097} {
		parsed, err := Parse(v.String())
		require.NoError(t, err, v.String())
		assert.Equal(t, v, parsed)
	}
	assert.Equal(t, "4Ki", ByteSize(4096).String())
	assert.Equal(t, "1000", ByteSize(1000).String())
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "512B", ByteSize(512).Human())
	assert.Equal(t, "1.50KiB", ByteSize(1536).Human())
	assert.Equal(t, "2.00MiB", (2 * MiB).Human())
}

func TestYAML(t *testing.T) {
	var cfg struct {
		BlockSize ByteSize `yaml:"block_size"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("block_size: 8Ki\n"), &cfg))
	assert.Equal(t, 8*KiB, cfg.BlockSize)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "block_size: 8Ki\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("block_size: lots\n"), &cfg))
}
