package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
)

// fakeStorage registra as operações feitas contra o storage.
type fakeStorage struct {
	saved     []string
	deleted   []string
	saveErr   error
	deleteErr error
}

func (f *fakeStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, key)
	return "/uploads/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, "/uploads/")
}

// fakePostImageRepo registra a última image_url gravada.
type fakePostImageRepo struct {
	id        string
	imageURL  string
	updateErr error
	calls     int
}

func (f *fakePostImageRepo) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.id, f.imageURL = id, imageURL
	f.calls++
	return nil
}

type fakeMemberImageRepo struct {
	id       string
	imageURL *string
	calls    int
}

func (f *fakeMemberImageRepo) UpdateImageURL(ctx context.Context, id string, imageURL *string) error {
	f.id, f.imageURL = id, imageURL
	f.calls++
	return nil
}

// multipartImage monta um corpo multipart com um campo "image".
func multipartImage(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newImageTestHandler(store *fakeStorage, post *model.Post, member *model.Member) (*ImageHandler, *fakePostImageRepo, *fakeMemberImageRepo) {
	postRepo := &fakePostImageRepo{}
	memberRepo := &fakeMemberImageRepo{}
	ps := &mockPostService{
		getBySlugFunc: func(ctx context.Context, slug string) (*model.Post, error) {
			if post != nil && slug == post.Slug {
				return post, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	ms := &mockMemberService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Member, error) {
			if member != nil && id == member.ID {
				return member, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	return NewImageHandler(store, ps, ms, postRepo, memberRepo), postRepo, memberRepo
}

func TestImageHandler_UploadPostImage_RequiresAuth(t *testing.T) {
	store := &fakeStorage{}
	h, _, _ := newImageTestHandler(store, &model.Post{ID: "p1", Slug: "s", AuthorID: "dono"}, nil)

	mux := http.NewServeMux()
	mux.Handle("POST /api/postagens/{slug}/imagem", http.HandlerFunc(h.UploadPostImage))

	body, ct := multipartImage(t, "capa.jpg", "image/jpeg", []byte("jpegdata"))
	req := httptest.NewRequest("POST", "/api/postagens/s/imagem", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if len(store.saved) != 0 {
		t.Error("nothing may be uploaded without a session")
	}
}

func TestImageHandler_UploadPostImage_OnlyAuthor(t *testing.T) {
	store := &fakeStorage{}
	h, postRepo, _ := newImageTestHandler(store, &model.Post{ID: "p1", Slug: "s", AuthorID: "dono"}, nil)

	mux := http.NewServeMux()
	mux.Handle("POST /api/postagens/{slug}/imagem", http.HandlerFunc(h.UploadPostImage))

	body, ct := multipartImage(t, "capa.jpg", "image/jpeg", []byte("jpegdata"))
	req := authedRequest("POST", "/api/postagens/s/imagem", body, "intruso")
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if len(store.saved) != 0 || postRepo.calls != 0 {
		t.Error("non-author must not reach storage or repository")
	}
}

func TestImageHandler_UploadPostImage_Success(t *testing.T) {
	store := &fakeStorage{}
	post := &model.Post{ID: "p1", Slug: "s", AuthorID: "dono", ImageURL: "/uploads/post-images/velha.jpg"}
	h, postRepo, _ := newImageTestHandler(store, post, nil)

	mux := http.NewServeMux()
	mux.Handle("POST /api/postagens/{slug}/imagem", http.HandlerFunc(h.UploadPostImage))

	body, ct := multipartImage(t, "capa.jpg", "image/jpeg", []byte("jpegdata"))
	req := authedRequest("POST", "/api/postagens/s/imagem", body, "dono")
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one upload, got %v", store.saved)
	}
	key := store.saved[0]
	if !strings.HasPrefix(key, "post-images/") || !strings.HasSuffix(key, "-capa.jpg") {
		t.Errorf("unexpected storage key %q", key)
	}
	// O asset anterior é removido e a nova URL gravada no registro.
	if len(store.deleted) != 1 || store.deleted[0] != "post-images/velha.jpg" {
		t.Errorf("expected old asset deleted, got %v", store.deleted)
	}
	if postRepo.id != "p1" || postRepo.imageURL != "/uploads/"+key {
		t.Errorf("unexpected repo write %q/%q", postRepo.id, postRepo.imageURL)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["imageUrl"] != "/uploads/"+key {
		t.Errorf("unexpected imageUrl %q", resp["imageUrl"])
	}
}

func TestImageHandler_UploadPostImage_RejectsContentType(t *testing.T) {
	store := &fakeStorage{}
	h, _, _ := newImageTestHandler(store, &model.Post{ID: "p1", Slug: "s", AuthorID: "dono"}, nil)

	mux := http.NewServeMux()
	mux.Handle("POST /api/postagens/{slug}/imagem", http.HandlerFunc(h.UploadPostImage))

	body, ct := multipartImage(t, "nota.txt", "text/plain", []byte("nao sou imagem"))
	req := authedRequest("POST", "/api/postagens/s/imagem", body, "dono")
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_content_type") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if len(store.saved) != 0 {
		t.Error("rejected upload must not reach storage")
	}
}

func TestImageHandler_UploadPostImage_StorageFailureSkipsDB(t *testing.T) {
	store := &fakeStorage{saveErr: errors.New("disk full")}
	h, postRepo, _ := newImageTestHandler(store, &model.Post{ID: "p1", Slug: "s", AuthorID: "dono"}, nil)

	mux := http.NewServeMux()
	mux.Handle("POST /api/postagens/{slug}/imagem", http.HandlerFunc(h.UploadPostImage))

	body, ct := multipartImage(t, "capa.jpg", "image/jpeg", []byte("jpegdata"))
	req := authedRequest("POST", "/api/postagens/s/imagem", body, "dono")
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	// A URL no banco só muda depois de o objeto existir no storage.
	if postRepo.calls != 0 {
		t.Error("record must not change when upload fails")
	}
}

func TestImageHandler_DeletePostImage_BestEffortAssetDelete(t *testing.T) {
	store := &fakeStorage{deleteErr: errors.New("object locked")}
	post := &model.Post{ID: "p1", Slug: "s", AuthorID: "dono", ImageURL: "/uploads/post-images/capa.jpg"}
	h, postRepo, _ := newImageTestHandler(store, post, nil)

	mux := http.NewServeMux()
	mux.Handle("DELETE /api/postagens/{slug}/imagem", http.HandlerFunc(h.DeletePostImage))

	req := authedRequest("DELETE", "/api/postagens/s/imagem", nil, "dono")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	// A falha na remoção do asset não impede a limpeza do registro.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if postRepo.calls != 1 || postRepo.imageURL != "" {
		t.Errorf("expected image url cleared, got %q (calls=%d)", postRepo.imageURL, postRepo.calls)
	}
}

func TestImageHandler_UploadMemberImage(t *testing.T) {
	store := &fakeStorage{}
	member := &model.Member{ID: "m1", Name: "Ana", Instituicao: "UFRRJ"}
	h, _, memberRepo := newImageTestHandler(store, nil, member)

	mux := http.NewServeMux()
	mux.Handle("POST /api/integrantes/{id}/imagem", http.HandlerFunc(h.UploadMemberImage))

	body, ct := multipartImage(t, "retrato.png", "image/png", []byte("pngdata"))
	req := httptest.NewRequest("POST", "/api/integrantes/m1/imagem", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.saved) != 1 || !strings.HasPrefix(store.saved[0], "member-images/") {
		t.Errorf("unexpected keys %v", store.saved)
	}
	if memberRepo.id != "m1" || memberRepo.imageURL == nil {
		t.Errorf("expected image url set, got %+v", memberRepo)
	}
}

func TestImageHandler_DeleteMemberImage_ClearsColumn(t *testing.T) {
	store := &fakeStorage{}
	url := "/uploads/member-images/retrato.png"
	member := &model.Member{ID: "m1", Name: "Ana", Instituicao: "UFRRJ", ImageURL: &url}
	h, _, memberRepo := newImageTestHandler(store, nil, member)

	mux := http.NewServeMux()
	mux.Handle("DELETE /api/integrantes/{id}/imagem", http.HandlerFunc(h.DeleteMemberImage))

	req := httptest.NewRequest("DELETE", "/api/integrantes/m1/imagem", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "member-images/retrato.png" {
		t.Errorf("expected asset deleted, got %v", store.deleted)
	}
	if memberRepo.calls != 1 || memberRepo.imageURL != nil {
		t.Errorf("expected column cleared to NULL, got %+v", memberRepo.imageURL)
	}
}
