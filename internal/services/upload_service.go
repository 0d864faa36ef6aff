package services

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// UploadService stores images under Dir and serves them from URLPrefix.
type UploadService struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
	RequestID string
}

type UploadResult struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func (s UploadService) SaveImage(name string, size int64, r io.Reader) (UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedImageExt[ext] {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: "only jpg, jpeg, png, gif and webp images are allowed"}
	}
	if s.MaxBytes > 0 && size > s.MaxBytes {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: fmt.Sprintf("file exceeds %d bytes", s.MaxBytes)}
	}

	// read one byte past the limit so oversize bodies with a lying header are caught
	limit := s.MaxBytes
	if limit <= 0 {
		limit = 1 << 30
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return UploadResult{}, domain.InternalError{Msg: "read upload", Err: err}
	}
	if int64(len(data)) > limit {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: fmt.Sprintf("file exceeds %d bytes", s.MaxBytes)}
	}
	if len(data) == 0 {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: "file is empty"}
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: "content is not an image (" + mt.String() + ")"}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return UploadResult{}, domain.InternalError{Msg: "create upload dir", Err: err}
	}
	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return UploadResult{}, domain.InternalError{Msg: "create upload file", Err: err}
	}
	defer dst.Close()
	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		return UploadResult{}, domain.InternalError{Msg: "write upload file", Err: err}
	}

	prefix := strings.TrimRight(s.URLPrefix, "/")
	if prefix == "" {
		prefix = "/uploads"
	}
	utils.LogEvent(s.RequestID, "uploads", "save_image", fmt.Sprintf("file=%s size=%d type=%s", filename, len(data), mt.String()))
	return UploadResult{
		URL:         prefix + "/" + filename,
		Filename:    filename,
		Size:        int64(len(data)),
		ContentType: mt.String(),
	}, nil
}
