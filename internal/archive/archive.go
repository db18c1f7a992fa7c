// Package archive packages a compiled binary into the release archive for
// one matrix cell. Windows targets produce a zip, everything else a gzipped
// tarball. The archive bytes are opaque to the rest of the pipeline.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"time"
)

// windowsOS is the matrix os value that selects zip packaging and the .exe
// binary suffix.
const windowsOS = "windows"

// Name returns the archive file name for a matrix cell, following the
// "<binary>-<displayName>.<ext>" convention: a zip extension for a Windows
// axis, a tar-style extension otherwise.
func Name(binary, displayName, osName string) string {
	if osName == windowsOS {
		return fmt.Sprintf("%s-%s.zip", binary, displayName)
	}
	return fmt.Sprintf("%s-%s.tar.gz", binary, displayName)
}

// BinaryFileName returns the name of the binary entry inside the archive.
func BinaryFileName(binary, osName string) string {
	if osName == windowsOS {
		return binary + ".exe"
	}
	return binary
}

// Package wraps a compiled binary blob into the archive for the given
// matrix cell and returns the archive name and bytes.
func Package(binary, displayName, osName string, blob []byte) (string, []byte, error) {
	name := Name(binary, displayName, osName)
	entry := BinaryFileName(binary, osName)

	var data []byte
	var err error
	if osName == windowsOS {
		data, err = packZip(entry, blob)
	} else {
		data, err = packTarGz(entry, blob)
	}
	if err != nil {
		return "", nil, fmt.Errorf("packaging %s: %w", name, err)
	}
	return name, data, nil
}

func packZip(entry string, blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(entry)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(blob); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func packTarGz(entry string, blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	header := &tar.Header{
		Name:    entry,
		Mode:    0755,
		Size:    int64(len(blob)),
		ModTime: time.Unix(0, 0),
	}
	if err := tw.WriteHeader(header); err != nil {
		return nil, err
	}
	if _, err := tw.Write(blob); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
