package storage

import (
	"io"
	"strings"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return s
}

func TestGenerateStoredNameUnique(t *testing.T) {
	a := GenerateStoredName("id.png", NewUniqueToken())
	b := GenerateStoredName("id.png", NewUniqueToken())
	if a == b {
		t.Fatalf("identical originals collided: %q", a)
	}
	if !strings.HasSuffix(a, "id.png") {
		t.Fatalf("stored name should keep the original suffix: %q", a)
	}
}

func TestGenerateStoredNameSanitizes(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd":  "passwd",
		"..\\..\\evil.png":  "evil.png",
		"dir/sub/photo.jpg": "photo.jpg",
		"":                  "file",
	}
	for in, want := range cases {
		got := GenerateStoredName(in, "tok")
		if got != "tok_"+want {
			t.Fatalf("sanitize %q: got %q, want %q", in, got, "tok_"+want)
		}
		if strings.ContainsAny(got, "/\\") || strings.Contains(got, "..") {
			t.Fatalf("unsafe stored name for %q: %q", in, got)
		}
	}
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestFileStore(t)

	name := GenerateStoredName("id.png", NewUniqueToken())
	written, err := s.Save(name, strings.NewReader("png bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if written != int64(len("png bytes")) {
		t.Fatalf("expected %d bytes written, got %d", len("png bytes"), written)
	}

	f, info, err := s.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if info.Size() != written {
		t.Fatalf("size mismatch: %d vs %d", info.Size(), written)
	}
	data, _ := io.ReadAll(f)
	if string(data) != "png bytes" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestSaveRejectsCollision(t *testing.T) {
	s := newTestFileStore(t)
	name := "tok_id.png"
	if _, err := s.Save(name, strings.NewReader("a")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := s.Save(name, strings.NewReader("b")); err == nil {
		t.Fatal("expected second save under the same name to fail")
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestFileStore(t)
	for _, name := range []string{"../secret", "a/../../b", "..", ""} {
		if _, _, err := s.Open(name); err == nil {
			t.Fatalf("expected open %q to fail", name)
		}
	}
}

func TestOpenMissing(t *testing.T) {
	s := newTestFileStore(t)
	if _, _, err := s.Open("tok_nope.png"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
