package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	cases := []struct {
		osName      string
		displayName string
		want        string
	}{
		{"windows", "win-x64", "ff-log-cli-win-x64.zip"},
		{"windows", "win-arm64", "ff-log-cli-win-arm64.zip"},
		{"linux", "linux-x64", "ff-log-cli-linux-x64.tar.gz"},
		{"macos", "macos-arm64", "ff-log-cli-macos-arm64.tar.gz"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Name("ff-log-cli", tc.displayName, tc.osName))
	}
}

func TestBinaryFileName(t *testing.T) {
	assert.Equal(t, "ff-log-cli.exe", BinaryFileName("ff-log-cli", "windows"))
	assert.Equal(t, "ff-log-cli", BinaryFileName("ff-log-cli", "linux"))
}

func TestPackage_Zip(t *testing.T) {
	blob := []byte("compiled windows binary")

	name, data, err := Package("ff-log-cli", "win-x64", "windows", blob)
	require.NoError(t, err)
	assert.Equal(t, "ff-log-cli-win-x64.zip", name)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "ff-log-cli.exe", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	unpacked, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, blob, unpacked)
}

func TestPackage_TarGz(t *testing.T) {
	blob := []byte("compiled linux binary")

	name, data, err := Package("ff-log-cli", "linux-x64", "linux", blob)
	require.NoError(t, err)
	assert.Equal(t, "ff-log-cli-linux-x64.tar.gz", name)

	gr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	tr := tar.NewReader(gr)

	header, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "ff-log-cli", header.Name)
	assert.Equal(t, int64(len(blob)), header.Size)

	unpacked, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, blob, unpacked)

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}
