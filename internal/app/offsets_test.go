package app

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

func TestOffsetStore_MissingFileKeepsBase(t *testing.T) {
	s := &OffsetStore{Fs: afero.NewMemMapFs(), Path: "/etc/trackermeta/offsets.yaml"}
	base := modarchive.DefaultLayout().Offsets
	got, err := s.Load(base)
	require.NoError(t, err)
	require.Equal(t, base, got)
}

func TestOffsetStore_PartialOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "offsets.yaml", []byte("spotlitShift: 1\n"), 0o644))

	s := &OffsetStore{Fs: fs, Path: "offsets.yaml"}
	got, err := s.Load(modarchive.Offsets{StatOffset: 0, SpotlitShift: 0, InstrumentBlock: 1})
	require.NoError(t, err)
	require.Equal(t, modarchive.Offsets{StatOffset: 0, SpotlitShift: 1, InstrumentBlock: 1}, got)
}

func TestOffsetStore_SaveLoadRoundTrip(t *testing.T) {
	for _, path := range []string{"/cfg/offsets.yaml", "/cfg/offsets.json"} {
		t.Run(path, func(t *testing.T) {
			s := &OffsetStore{Fs: afero.NewMemMapFs(), Path: path}
			want := modarchive.Offsets{StatOffset: 2, SpotlitShift: 1, InstrumentBlock: 3}
			require.NoError(t, s.Save(want))
			got, err := s.Load(modarchive.Offsets{})
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestOffsetStore_RejectsBadInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "neg.yaml", []byte("instrumentBlock: -1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "junk.yaml", []byte("statOffset: [1, 2\n"), 0o644))

	for _, p := range []string{"neg.yaml", "junk.yaml"} {
		_, err := (&OffsetStore{Fs: fs, Path: p}).Load(modarchive.Offsets{})
		require.Error(t, err, p)
	}
}
