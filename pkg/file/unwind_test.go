package file

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	. "github.com/weberc2/mfs/pkg/types"
)

func TestUnwindLogsFreeErrors(t *testing.T) {
	img := newImage(t, testGeometry)
	hook := test.NewGlobal()
	defer hook.Reset()

	// block 20 was never allocated, so freeing it fails
	freeBlocks(img, []Block{20})
	(&ingest{img: img}).release(21)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, log.ErrorLevel, entry.Level)
	}
	require.Contains(t, entries[0].Message, "`20`")
	require.Contains(t, entries[1].Message, "`21`")
	require.True(t, img.Blocks.IsFree(20))
	require.True(t, img.Blocks.IsFree(21))
}
