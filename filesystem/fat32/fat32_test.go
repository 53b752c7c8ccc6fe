package fat32_test

/*
 These tests the exported functions
 against synthetic images built by testhelper.FATImage
*/

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/diskfs/go-fatdecode/backend/file"
	"github.com/diskfs/go-fatdecode/filesystem"
	"github.com/diskfs/go-fatdecode/filesystem/fat32"
	"github.com/diskfs/go-fatdecode/testhelper"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
)

// testImage is a volume with 1024 byte clusters holding a root directory in cluster 2,
// a subdirectory in cluster 5 and a distinct byte pattern in each other cluster
func testImage() testhelper.FATImage {
	img := testhelper.DefaultFATImage()
	img.SectorsPerCluster = 2
	img.DataClusters = 8
	deleted := testhelper.DirRecord("OLD", "TXT", 0x20, 4, 3)
	deleted[0] = 0xe5
	img.Clusters[2] = testhelper.Directory(
		testhelper.DirRecord("HELLO", "TXT", 0x20, 3, 11),
		deleted,
		testhelper.DirRecord("SUBDIR", "", 0x10, 5, 0),
	)
	img.Clusters[3] = []byte("Hello World")
	img.Clusters[4] = bytes.Repeat([]byte{0x44}, img.ClusterSize())
	img.Clusters[5] = testhelper.Directory(
		testhelper.DirRecord(".", "", 0x10, 5, 0),
		testhelper.DirRecord("..", "", 0x10, 0, 0),
	)
	img.Clusters[6] = bytes.Repeat([]byte{0x66}, img.ClusterSize())
	return img
}

func readTestFS(t *testing.T, img testhelper.FATImage) (*fat32.FileSystem, []byte) {
	t.Helper()
	b := img.Bytes()
	fs, err := fat32.Read(testhelper.BytesFile(b))
	require.NoError(t, err, "reading filesystem failed")
	return fs, b
}

func TestRead(t *testing.T) {
	t.Run("valid image", func(t *testing.T) {
		img := testImage()
		fs, _ := readTestFS(t, img)
		expected := fat32.Layout{
			FATStart:          32,
			ClustersStart:     img.ClustersStart(),
			SectorsPerCluster: 2,
			ClusterSize:       1024,
			RootDir:           2,
			BytesPerSector:    512,
			FATCopies:         2,
			SectorsPerFAT:     8,
			FSInfoSector:      1,
		}
		if diff := deep.Equal(fs.Layout(), expected); diff != nil {
			t.Error(diff)
		}
		if fs.Type() != filesystem.TypeFat32 {
			t.Errorf("type %v instead of %v", fs.Type(), filesystem.TypeFat32)
		}
	})
	t.Run("short image", func(t *testing.T) {
		_, err := fat32.Read(testhelper.BytesFile([]byte("This is no FAT file")))
		require.ErrorIs(t, err, fat32.ErrRead)
	})
	t.Run("zero geometry", func(t *testing.T) {
		_, err := fat32.Read(testhelper.BytesFile(make([]byte, 4096)))
		require.ErrorIs(t, err, fat32.ErrDegenerateLayout)
	})
}

func TestReadCluster(t *testing.T) {
	img := testImage()
	fs, b := readTestFS(t, img)
	clusterSize := int64(img.ClusterSize())

	t.Run("cluster 2 starts at the data region", func(t *testing.T) {
		c, err := fs.ReadCluster(2)
		require.NoError(t, err)
		require.Len(t, c, img.ClusterSize())
		start := img.ClustersStart()
		require.Equal(t, b[start:start+clusterSize], c)
	})
	t.Run("adjacent clusters are contiguous", func(t *testing.T) {
		for n := uint32(2); n < 9; n++ {
			first, err := fs.ReadCluster(n)
			require.NoError(t, err)
			second, err := fs.ReadCluster(n + 1)
			require.NoError(t, err)
			offset := img.ClustersStart() + int64(n-2)*clusterSize
			require.Equal(t, b[offset:offset+2*clusterSize], append(first, second...), "clusters %d and %d", n, n+1)
		}
	})
	t.Run("content", func(t *testing.T) {
		c, err := fs.ReadCluster(3)
		require.NoError(t, err)
		require.Equal(t, "Hello World", string(c[:11]))
		c, err = fs.ReadCluster(6)
		require.NoError(t, err)
		require.Equal(t, bytes.Repeat([]byte{0x66}, img.ClusterSize()), c)
	})
	t.Run("fresh buffer each read", func(t *testing.T) {
		c1, err := fs.ReadCluster(4)
		require.NoError(t, err)
		c1[0] = 0
		c2, err := fs.ReadCluster(4)
		require.NoError(t, err)
		require.Equal(t, byte(0x44), c2[0])
	})
	t.Run("reserved cluster numbers", func(t *testing.T) {
		for _, n := range []uint32{0, 1} {
			c, err := fs.ReadCluster(n)
			require.ErrorIs(t, err, fat32.ErrInvalidClusterNumber)
			require.Nil(t, c)
		}
	})
	t.Run("past end of image", func(t *testing.T) {
		_, err := fs.ReadCluster(10)
		require.ErrorIs(t, err, fat32.ErrShortRead)
		_, err = fs.ReadCluster(100000)
		require.ErrorIs(t, err, fat32.ErrShortRead)
	})
}

func TestReadClusterTruncated(t *testing.T) {
	img := testImage()
	b := img.Bytes()
	// cut the image in the middle of cluster 9, the last one
	b = b[:len(b)-img.ClusterSize()/2]
	fs, err := fat32.Read(testhelper.BytesFile(b))
	require.NoError(t, err)
	_, err = fs.ReadCluster(8)
	require.NoError(t, err)
	_, err = fs.ReadCluster(9)
	require.ErrorIs(t, err, fat32.ErrShortRead)
}

func TestReadClusterSeekFailure(t *testing.T) {
	b := testImage().Bytes()
	t.Run("seek error", func(t *testing.T) {
		f := testhelper.BytesFile(b)
		fs, err := fat32.Read(f)
		require.NoError(t, err)
		f.Seeker = func(offset int64, whence int) (int64, error) {
			return 0, errors.New("offset unreachable")
		}
		_, err = fs.ReadCluster(2)
		require.ErrorIs(t, err, fat32.ErrSeekFailure)
	})
	t.Run("wrong position", func(t *testing.T) {
		f := testhelper.BytesFile(b)
		fs, err := fat32.Read(f)
		require.NoError(t, err)
		f.Seeker = func(offset int64, whence int) (int64, error) {
			return offset - 1, nil
		}
		_, err = fs.ReadCluster(3)
		require.ErrorIs(t, err, fat32.ErrSeekFailure)
	})
}

// a read must not depend on where the storage was left by someone else
func TestReadClusterSeeksEveryTime(t *testing.T) {
	img := testImage()
	f := testhelper.BytesFile(img.Bytes())
	fs, err := fat32.Read(f)
	require.NoError(t, err)
	first, err := fs.ReadCluster(6)
	require.NoError(t, err)
	_, err = f.Seek(17, io.SeekStart)
	require.NoError(t, err)
	second, err := fs.ReadCluster(6)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReadDirectory(t *testing.T) {
	fs, _ := readTestFS(t, testImage())

	root, err := fs.ReadRootDirectory()
	require.NoError(t, err)
	expected := []fat32.DirectoryEntry{
		{Name: "HELLO.TXT", StartCluster: 3, FileSize: 11, Attributes: fat32.AttrArchive},
		{Name: "SUBDIR.   ", IsDirectory: true, StartCluster: 5, Attributes: fat32.AttrDirectory},
	}
	if diff := deep.Equal(root, expected); diff != nil {
		t.Error(diff)
	}

	sub, err := fs.ReadDirectory(root[1].StartCluster)
	require.NoError(t, err)
	names := make([]string, 0, len(sub))
	for _, e := range sub {
		names = append(names, e.ShortName())
	}
	require.Equal(t, []string{".", ".."}, names)

	_, err = fs.ReadDirectory(1)
	require.ErrorIs(t, err, fat32.ErrInvalidClusterNumber)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "fat32.img")
	require.NoError(t, os.WriteFile(valid, testImage().Bytes(), 0o600))
	short := filepath.Join(dir, "short.img")
	require.NoError(t, os.WriteFile(short, []byte("too short"), 0o600))
	degenerate := filepath.Join(dir, "zero.img")
	require.NoError(t, os.WriteFile(degenerate, make([]byte, 1024), 0o600))

	t.Run("valid", func(t *testing.T) {
		fs, err := fat32.Open(valid)
		require.NoError(t, err)
		defer fs.Close()
		entries, err := fs.ReadRootDirectory()
		require.NoError(t, err)
		require.Len(t, entries, 2)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := fat32.Open(filepath.Join(dir, "missing.img"))
		require.ErrorIs(t, err, fat32.ErrOpen)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("short", func(t *testing.T) {
		_, err := fat32.Open(short)
		require.ErrorIs(t, err, fat32.ErrOpen)
		require.ErrorIs(t, err, fat32.ErrRead)
	})
	t.Run("degenerate", func(t *testing.T) {
		_, err := fat32.Open(degenerate)
		require.ErrorIs(t, err, fat32.ErrOpen)
		require.ErrorIs(t, err, fat32.ErrDegenerateLayout)
	})
	t.Run("from os.File", func(t *testing.T) {
		f, err := os.Open(valid)
		require.NoError(t, err)
		fs, err := fat32.Read(file.New(f))
		require.NoError(t, err)
		defer fs.Close()
		c, err := fs.ReadCluster(3)
		require.NoError(t, err)
		require.Equal(t, "Hello World", string(c[:11]))
	})
}
