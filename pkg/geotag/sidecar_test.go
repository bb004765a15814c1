package geotag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeSidecars(t *testing.T) {
	in := []Asset{
		{SourceFile: "/p/IMG_1.jpg"},
		{SourceFile: "/p/IMG_1.xmp", DateTimeOriginal: "2020:05:05 10:00:00", OffsetTimeOriginal: "+02:00"},
		{SourceFile: "/p/IMG_10.jpg", DateTimeOriginal: "2021:01:01 00:00:00"},
		{SourceFile: "/p/IMG_2.heic", DateTimeOriginal: "2020:05:06 10:00:00"},
		{SourceFile: "/p/IMG_2.XMP", HasGPS: true},
		{SourceFile: "/p/orphan.xmp", HasGPS: true},
	}

	want := []Asset{
		{SourceFile: "/p/IMG_1.jpg", DateTimeOriginal: "2020:05:05 10:00:00", OffsetTimeOriginal: "+02:00"},
		// Prefix match: IMG_1.xmp also applies to IMG_10.jpg, without
		// replacing the date it already has.
		{SourceFile: "/p/IMG_10.jpg", DateTimeOriginal: "2021:01:01 00:00:00", OffsetTimeOriginal: "+02:00"},
		{SourceFile: "/p/IMG_2.heic", DateTimeOriginal: "2020:05:06 10:00:00", HasGPS: true},
	}
	if diff := cmp.Diff(want, MergeSidecars(in)); diff != "" {
		t.Errorf("MergeSidecars() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSidecarsWithoutSidecars(t *testing.T) {
	in := []Asset{{SourceFile: "/p/b.jpg"}, {SourceFile: "/p/a.jpg"}}
	if diff := cmp.Diff(in, MergeSidecars(in)); diff != "" {
		t.Errorf("MergeSidecars() mismatch (-want +got):\n%s", diff)
	}
}

func TestSidecarPath(t *testing.T) {
	tests := map[string]string{
		"/p/IMG_1.jpg":  "/p/IMG_1.xmp",
		"/p/a.b.c.HEIC": "/p/a.b.c.xmp",
		"/p/noext":      "/p/noext.xmp",
	}
	for in, want := range tests {
		if got := SidecarPath(in); got != want {
			t.Errorf("SidecarPath(%q) = %q, want %q", in, got, want)
		}
	}
	if !IsSidecar("/p/a.XMP") || IsSidecar("/p/a.jpg") {
		t.Error("IsSidecar misclassified extensions")
	}
}
