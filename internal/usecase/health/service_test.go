package health

import (
	"testing"

	"github.com/kailas-cloud/cinedex/internal/index"
	"github.com/kailas-cloud/cinedex/internal/snapshot"
)

type fakeProvider struct {
	ix *index.Index
}

func (f *fakeProvider) Get() (*index.Index, bool) {
	return f.ix, f.ix != nil
}

func TestCheck_Degraded(t *testing.T) {
	svc := New(&fakeProvider{})

	report := svc.Check()
	if report.Status != Degraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}
	if report.Items != 0 {
		t.Errorf("items = %d, want 0", report.Items)
	}
}

func TestCheck_Healthy(t *testing.T) {
	ix, _, err := index.Build([]snapshot.Row{
		{ID: "1", Type: "movie", Title: "Alpha", Overview: "space war", GenreNames: "Action"},
		{ID: "2", Type: "movie", Title: "Beta", Overview: "cooking", GenreNames: "Comedy"},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	svc := New(&fakeProvider{ix: ix})

	report := svc.Check()
	if report.Status != Healthy {
		t.Errorf("status = %s, want ok", report.Status)
	}
	if report.Items != 2 {
		t.Errorf("items = %d, want 2", report.Items)
	}
	if report.VocabSize == 0 {
		t.Error("vocab size should be non-zero for a loaded index")
	}
}
