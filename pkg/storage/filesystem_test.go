package storage

import (
	"context"
	"errors"
	"testing"
)

type doc struct {
	Bio   string `json:"bio"`
	Color string `json:"color"`
}

func TestFilesystemDocuments(t *testing.T) {
	var fs FilesystemDriver
	if err := fs.Init(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var missing doc
	if err := fs.ReadDocument(ctx, "personalizacion/1", &missing); err != nil {
		t.Fatal(err)
	}
	if missing != (doc{}) {
		t.Errorf("missing document should read as zero, got %+v", missing)
	}

	if err := fs.WriteDocument(ctx, "personalizacion/1", doc{Bio: "hola", Color: "#FFFFFF"}); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteDocument(ctx, "personalizacion/1", doc{Bio: "adiós"}); err != nil {
		t.Fatal(err)
	}
	var got doc
	if err := fs.ReadDocument(ctx, "personalizacion/1", &got); err != nil {
		t.Fatal(err)
	}
	if got != (doc{Bio: "adiós"}) {
		t.Errorf("writes replace the whole document, got %+v", got)
	}
}

func TestFilesystemRejectsEscapingKeys(t *testing.T) {
	var fs FilesystemDriver
	if err := fs.Init(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../etc/passwd", "/abs"} {
		if err := fs.WriteDocument(context.Background(), key, doc{}); !errors.Is(err, ErrBadDocumentKey) {
			t.Errorf("key %q should be rejected, got %v", key, err)
		}
	}
}
