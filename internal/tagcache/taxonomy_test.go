package tagcache

import "testing"

func TestDescribeKnownAndUnknown(t *testing.T) {
	d, err := Describe(Artist)
	if err != nil {
		t.Fatalf("Describe(Artist): %v", err)
	}
	if d.Name != "artist" || d.Filename != "database_0.tcd" {
		t.Errorf("unexpected descriptor: %+v", d)
	}

	if _, err := Describe(KindCount); err == nil {
		t.Error("expected an error describing an out-of-range kind")
	}
}

func TestByNameRoundTrip(t *testing.T) {
	k, err := ByName("genre")
	if err != nil {
		t.Fatalf("ByName(genre): %v", err)
	}
	if k != Genre {
		t.Errorf("got %v, want Genre", k)
	}

	if _, err := ByName("nonexistent"); err == nil {
		t.Error("expected an error for an unknown tag name")
	}
}

func TestByFilenameOnlyMatchesFileReferencedKinds(t *testing.T) {
	k, err := ByFilename("database_3.tcd")
	if err != nil {
		t.Fatalf("ByFilename: %v", err)
	}
	if k != Title {
		t.Errorf("got %v, want Title", k)
	}

	if _, err := ByFilename("database_99.tcd"); err == nil {
		t.Error("expected an error for an unknown filename")
	}
}

func TestFileReferencedKindsMatchIsFileReferenced(t *testing.T) {
	for _, k := range FileReferencedKinds {
		if !k.IsFileReferenced() {
			t.Errorf("%v listed in FileReferencedKinds but IsFileReferenced() is false", k)
		}
	}
	if Year.IsFileReferenced() {
		t.Error("Year should be embedded-numeric, not file-referenced")
	}
}
