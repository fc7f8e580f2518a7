package posts

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"
)

// fakeRepository is an in-memory post store for service tests
type fakeRepository struct {
	posts     map[string]*Post
	nextID    int
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: map[string]*Post{}}
}

func (f *fakeRepository) CreatePost(ctx context.Context, post *Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	f.posts[post.ID] = post
	return nil
}

func (f *fakeRepository) GetPostByID(ctx context.Context, id string) (*Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, ErrPostNotFound
}

func (f *fakeRepository) ListPosts(ctx context.Context) ([]Post, error) {
	out := []Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepository) TogglePublished(ctx context.Context, id string) (bool, error) {
	p, ok := f.posts[id]
	if !ok {
		return false, ErrPostNotFound
	}
	p.IsPublished.Valid = true
	p.IsPublished.Bool = !p.IsPublished.Bool
	return p.IsPublished.Bool, nil
}

func (f *fakeRepository) DeletePost(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

// fakeStorage records uploads and deletes without touching a filesystem
type fakeStorage struct {
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (f *fakeStorage) UploadFile(file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := fmt.Sprintf("https://media.example.com/%s/%s", prefix, header.Filename)
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func uploadHeader(filename string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: filename}
}

func TestUploadPost(t *testing.T) {
	repo := newFakeRepository()
	store := &fakeStorage{}
	svc := NewService(repo, store)

	post, err := svc.UploadPost(context.Background(), nil, uploadHeader("clip.mp4"), &CreatePostRequest{
		Title:     "Launch day",
		Content:   "We are live",
		MediaType: "video",
		CreatedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("UploadPost: %v", err)
	}

	if post.ID == "" {
		t.Fatal("post has no id")
	}
	if post.MediaURL == "" {
		t.Error("post has no media URL")
	}
	if len(store.uploaded) != 1 {
		t.Errorf("uploads = %d, want 1", len(store.uploaded))
	}
}

func TestUploadPostValidation(t *testing.T) {
	svc := NewService(newFakeRepository(), &fakeStorage{})

	_, err := svc.UploadPost(context.Background(), nil, uploadHeader("clip.mp4"), &CreatePostRequest{
		Title:     "", // required
		MediaType: "video",
		CreatedBy: "user-1",
	})
	if !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("err = %v, want ErrInvalidUpload", err)
	}

	_, err = svc.UploadPost(context.Background(), nil, uploadHeader("clip.mp4"), &CreatePostRequest{
		Title:     "ok",
		MediaType: "podcast", // not an allowed media type
		CreatedBy: "user-1",
	})
	if !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("err = %v, want ErrInvalidUpload", err)
	}
}

func TestUploadPostCleansUpOnInsertFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = errors.New("insert failed")
	store := &fakeStorage{}
	svc := NewService(repo, store)

	_, err := svc.UploadPost(context.Background(), nil, uploadHeader("clip.mp4"), &CreatePostRequest{
		Title:     "Launch day",
		MediaType: "video",
		CreatedBy: "user-1",
	})
	if err == nil {
		t.Fatal("UploadPost should fail when the insert fails")
	}
	if len(store.deleted) != 1 {
		t.Errorf("orphaned upload not cleaned up, deletes = %d", len(store.deleted))
	}
}

func TestTogglePublished(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeStorage{})

	post, err := svc.UploadPost(context.Background(), nil, uploadHeader("pic.png"), &CreatePostRequest{
		Title:     "photo",
		MediaType: "image",
		CreatedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("UploadPost: %v", err)
	}

	published, err := svc.TogglePublished(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("TogglePublished: %v", err)
	}
	if !published {
		t.Error("first toggle should publish")
	}

	published, err = svc.TogglePublished(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("TogglePublished: %v", err)
	}
	if published {
		t.Error("second toggle should unpublish")
	}

	if _, err := svc.TogglePublished(context.Background(), "nope"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestDeletePostRemovesMedia(t *testing.T) {
	repo := newFakeRepository()
	store := &fakeStorage{}
	svc := NewService(repo, store)

	post, err := svc.UploadPost(context.Background(), nil, uploadHeader("pic.png"), &CreatePostRequest{
		Title:     "photo",
		MediaType: "image",
		CreatedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("UploadPost: %v", err)
	}

	if err := svc.DeletePost(context.Background(), post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != post.MediaURL {
		t.Errorf("media not deleted, deletes = %v", store.deleted)
	}

	if err := svc.DeletePost(context.Background(), post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("second delete err = %v, want ErrPostNotFound", err)
	}
}
