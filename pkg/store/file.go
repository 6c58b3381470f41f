package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

// FileBackend stores each key as a file in a directory.
// Writes go to a temp file that is synced and renamed into place.
type FileBackend struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

type FileBackendConfig struct {
	Dir string
	// Compress stores documents zstd-compressed with a .json.zst extension.
	Compress bool
}

func NewFileBackend(cfg FileBackendConfig) (*FileBackend, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", cfg.Dir, err)
	}

	f := &FileBackend{dir: cfg.Dir}
	if !cfg.Compress {
		return f, nil
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	f.encoder = encoder
	f.decoder = decoder

	return f, nil
}

func (f *FileBackend) path(key string) string {
	if f.encoder != nil {
		return filepath.Join(f.dir, key+".json.zst")
	}
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if f.decoder == nil {
		return data, nil
	}

	decompressed, err := f.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPersistedState, err)
	}
	return decompressed, nil
}

func (f *FileBackend) Set(_ context.Context, key string, value []byte) error {
	data := value
	if f.encoder != nil {
		data = f.encoder.EncodeAll(value, make([]byte, 0, len(value)/2))
	}

	fileName := f.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	logrus.Debugf("wrote %s (%d bytes)", fileName, len(data))
	return os.Rename(tmpFile, fileName)
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Ping checks that the state directory is still there.
func (f *FileBackend) Ping(_ context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}
	return nil
}

func (f *FileBackend) Close() {
	if f.encoder != nil {
		f.encoder.Close()
	}
	if f.decoder != nil {
		f.decoder.Close()
	}
}
