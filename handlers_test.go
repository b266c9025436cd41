package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubMailer struct {
	sent []Message
	err  error
}

func (s *stubMailer) Send(m Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m)
	return nil
}

type stubCompletion struct {
	answer string
	err    error
}

func (s *stubCompletion) Ask(ctx context.Context, query string) (string, error) {
	return s.answer, s.err
}

// performRequest runs one request against the handler and returns the
// recorder.
func performRequest(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newTestRouter(app *App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	app.setupRoutes(r)
	return r
}

func TestAskMissingQuery(t *testing.T) {
	app := &App{cfg: Config{SecretKey: "test"}, ai: &stubCompletion{answer: "unused"}}
	r := newTestRouter(app)

	for _, body := range []string{"{}", `{"query": ""}`, "not-json"} {
		resp := performRequest(r, http.MethodPost, "/ask", bytes.NewBufferString(body), "application/json")
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
		var out map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatal(err)
		}
		if out["error"] == "" {
			t.Fatalf("body %q: expected error field, got %s", body, resp.Body.String())
		}
	}
}

func TestAskReturnsAnswer(t *testing.T) {
	app := &App{cfg: Config{SecretKey: "test"}, ai: &stubCompletion{answer: "A derivative measures change."}}
	r := newTestRouter(app)

	body := bytes.NewBufferString(`{"query": "What is a derivative?"}`)
	resp := performRequest(r, http.MethodPost, "/ask", body, "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}
	var out map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["answer"] != "A derivative measures change." {
		t.Fatalf("unexpected answer: %q", out["answer"])
	}
}

func TestAskUpstreamFailure(t *testing.T) {
	app := &App{cfg: Config{SecretKey: "test"}, ai: &stubCompletion{err: errors.New("quota exceeded")}}
	r := newTestRouter(app)

	body := bytes.NewBufferString(`{"query": "anything"}`)
	resp := performRequest(r, http.MethodPost, "/ask", body, "application/json")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf, mw.FormDataContentType()
}

func TestUploadExamsRejectsNonPDF(t *testing.T) {
	mailer := &stubMailer{}
	app := &App{cfg: Config{SecretKey: "test", MailUsername: "team@example.com"}, mail: mailer}
	r := newTestRouter(app)

	buf, ct := multipartFile(t, "exam_pdf", "notes.txt", []byte("hello"))
	resp := performRequest(r, http.MethodPost, "/upload_exams", buf, ct)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/upload_exams" {
		t.Fatalf("expected redirect back to form, got %q", loc)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("mail sent for an invalid file")
	}
}

func TestUploadExamsSendsMailWithAttachment(t *testing.T) {
	mailer := &stubMailer{}
	app := &App{cfg: Config{SecretKey: "test", MailUsername: "team@example.com"}, mail: mailer}
	r := newTestRouter(app)

	buf, ct := multipartFile(t, "exam_pdf", "math-10-midterm.pdf", []byte("%PDF-1.4 fake"))
	resp := performRequest(r, http.MethodPost, "/upload_exams", buf, ct)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d body=%s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to index, got %q", loc)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	m := mailer.sent[0]
	if m.Subject != "New exam uploaded" {
		t.Errorf("unexpected subject %q", m.Subject)
	}
	if len(m.To) != 1 || m.To[0] != "team@example.com" {
		t.Errorf("unexpected recipients %v", m.To)
	}
	if len(m.Attachments) != 1 || m.Attachments[0].Filename != "math-10-midterm.pdf" {
		t.Fatalf("unexpected attachments %+v", m.Attachments)
	}
	if !bytes.Equal(m.Attachments[0].Data, []byte("%PDF-1.4 fake")) {
		t.Error("attachment bytes do not match the upload")
	}
}

func TestUploadExamsMailFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp unreachable")}
	app := &App{cfg: Config{SecretKey: "test", MailUsername: "team@example.com"}, mail: mailer}
	r := newTestRouter(app)

	buf, ct := multipartFile(t, "exam_pdf", "exam.pdf", []byte("%PDF"))
	resp := performRequest(r, http.MethodPost, "/upload_exams", buf, ct)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on mail failure, got %d", resp.Code)
	}
}

func TestGatedRoutesRedirectToLogin(t *testing.T) {
	app := &App{cfg: Config{SecretKey: "test"}}
	r := newTestRouter(app)

	for _, path := range []string{"/history", "/download_key/Algebra%20Test%20(Answer%20Key).pdf", "/logout"} {
		resp := performRequest(r, http.MethodGet, path, nil, "")
		if resp.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, resp.Code)
		}
		if loc := resp.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}
