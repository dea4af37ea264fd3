// Package upload owns the local file storage behind the admin forms:
// product and category images plus the payment QR code. Files live
// under a public dir served statically by the kiosk server.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"optica-store/internal/logger"
	"optica-store/internal/metrics"
)

const (
	KindProducto  = "producto"
	KindCategoria = "categoria"

	// QRFilename is fixed: uploading a new payment QR replaces the
	// previous one.
	QRFilename = "qr-pago.jpg"

	maxImageSize = 5 << 20
)

var (
	ErrEmptyFile    = errors.New("upload: empty file")
	ErrNotAnImage   = errors.New("upload: file is not an image")
	ErrTooLarge     = errors.New("upload: file exceeds 5MB")
	ErrUnknownKind  = errors.New("upload: unknown image kind")
	ErrUnsafePath   = errors.New("upload: unsafe path")
	ErrQRNotPresent = errors.New("upload: no QR uploaded")
)

var unsafeChars = regexp.MustCompile(`[^\w\-.]`)

type Service struct {
	baseDir string
}

func NewService(baseDir string) (*Service, error) {
	for _, sub := range []string{"productos", "categorias"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Service{baseDir: baseDir}, nil
}

func dirFor(kind string) (string, error) {
	switch kind {
	case KindProducto:
		return "productos", nil
	case KindCategoria:
		return "categorias", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// SaveImage stores an uploaded image and returns its public path. The
// filename keeps its base name with unsafe characters replaced.
func (s *Service) SaveImage(kind, filename string, r io.Reader) (path, storedName string, err error) {
	dir, err := dirFor(kind)
	if err != nil {
		return "", "", err
	}

	storedName = unsafeChars.ReplaceAllString(filepath.Base(filename), "_")
	if storedName == "" || storedName == "." || storedName == ".." {
		return "", "", ErrUnsafePath
	}

	dst := filepath.Join(s.baseDir, dir, storedName)
	if err := writeFile(dst, r, maxImageSize); err != nil {
		return "", "", err
	}

	metrics.Uploads.Inc()
	logger.L().Info("image stored",
		zap.String("kind", kind),
		zap.String("file", storedName),
	)
	return "/" + dir + "/" + storedName, storedName, nil
}

// Delete removes a previously stored image. A missing file is not an
// error; the outcome is the same.
func (s *Service) Delete(path, kind string) error {
	dir, err := dirFor(kind)
	if err != nil {
		return err
	}

	name := filepath.Base(strings.TrimSpace(path))
	if name == "" || name == "." || name == ".." {
		return ErrUnsafePath
	}

	err = os.Remove(filepath.Join(s.baseDir, dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// SaveQR replaces the payment QR. Content type and size are validated
// because the QR is rendered straight onto the payment page.
func (s *Service) SaveQR(contentType string, size int64, r io.Reader) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > maxImageSize {
		return ErrTooLarge
	}

	if err := writeFile(filepath.Join(s.baseDir, QRFilename), r, maxImageSize); err != nil {
		return err
	}

	metrics.Uploads.Inc()
	logger.L().Info("payment QR replaced")
	return nil
}

func (s *Service) QRExists() bool {
	_, err := os.Stat(filepath.Join(s.baseDir, QRFilename))
	return err == nil
}

func (s *Service) DeleteQR() error {
	err := os.Remove(filepath.Join(s.baseDir, QRFilename))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrQRNotPresent
	}
	if err != nil {
		return fmt.Errorf("delete QR: %w", err)
	}
	return nil
}

// BaseDir is the directory the server exposes statically.
func (s *Service) BaseDir() string {
	return s.baseDir
}

func writeFile(dst string, r io.Reader, limit int64) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("store file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("store file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("store file: %w", err)
	}
	if n == 0 {
		os.Remove(dst)
		return ErrEmptyFile
	}
	if n > limit {
		os.Remove(dst)
		return ErrTooLarge
	}
	return nil
}
