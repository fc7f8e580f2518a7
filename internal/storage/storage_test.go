package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newLocalService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{
		LocalUploadDir: t.TempDir(),
		BaseURL:        "http://localhost:8080",
		MaxFileSize:    1 << 20,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

// multipartFile builds a real multipart upload so the service sees the same
// file/header pair the handlers pass it.
func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestUploadAndDeleteLocal(t *testing.T) {
	svc := newLocalService(t)
	file, header := multipartFile(t, "photo.png", []byte("fake png bytes"))

	url, err := svc.UploadFile(file, header, "image")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/uploads/image/") {
		t.Errorf("unexpected URL %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("URL lost the extension: %s", url)
	}

	localPath := filepath.Join(svc.uploadDir,
		strings.TrimPrefix(url, "http://localhost:8080/uploads/"))
	data, err := os.ReadFile(localPath)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Errorf("stored content = %q", data)
	}

	if err := svc.DeleteFile(url); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(localPath); !os.IsNotExist(err) {
		t.Error("file still exists after delete")
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc := newLocalService(t)
	file, header := multipartFile(t, "script.exe", []byte("nope"))

	_, err := svc.UploadFile(file, header, "image")
	if !errors.Is(err, ErrTypeNotAllowed) {
		t.Fatalf("err = %v, want ErrTypeNotAllowed", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, err := NewService(Config{
		LocalUploadDir: t.TempDir(),
		BaseURL:        "http://localhost:8080",
		MaxFileSize:    8,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	file, header := multipartFile(t, "big.png", []byte("more than eight bytes"))
	if _, err := svc.UploadFile(file, header, "image"); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestAllowedFile(t *testing.T) {
	allowed := []string{"a.mp4", "b.MOV", "c.jpg", "d.jpeg", "e.png", "f.gif"}
	for _, name := range allowed {
		if !AllowedFile(name) {
			t.Errorf("AllowedFile(%s) = false, want true", name)
		}
	}

	rejected := []string{"a.exe", "b.pdf", "c", "d.mp3", ".mp4.txt"}
	for _, name := range rejected {
		if AllowedFile(name) {
			t.Errorf("AllowedFile(%s) = true, want false", name)
		}
	}
}

func TestMediaTypeFor(t *testing.T) {
	if got := MediaTypeFor("clip.mp4"); got != "video" {
		t.Errorf("MediaTypeFor(clip.mp4) = %s, want video", got)
	}
	if got := MediaTypeFor("clip.MOV"); got != "video" {
		t.Errorf("MediaTypeFor(clip.MOV) = %s, want video", got)
	}
	if got := MediaTypeFor("pic.png"); got != "image" {
		t.Errorf("MediaTypeFor(pic.png) = %s, want image", got)
	}
}
