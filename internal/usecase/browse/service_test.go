package browse

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/index"
	"github.com/kailas-cloud/cinedex/internal/snapshot"
)

type fakeProvider struct {
	ix *index.Index
}

func (f *fakeProvider) Get() (*index.Index, bool) {
	return f.ix, f.ix != nil
}

func testRows() []snapshot.Row {
	return []snapshot.Row{
		{ID: "1", Type: "movie", Title: "Alpha", Overview: "space war", GenreNames: "Action, Drama", Popularity: 10},
		{ID: "2", Type: "tv", Title: "Beta Show", Overview: "space farce", GenreNames: "Comedy", Popularity: 50},
		{ID: "3", Type: "movie", Title: "Gamma", Overview: "cooking", GenreNames: "Reaction Videos", Popularity: 30},
		{ID: "4", Type: "tv", Title: "Delta", Overview: "heists", GenreNames: "Action", Popularity: 20},
	}
}

func loadedService(t *testing.T, rows []snapshot.Row) *Service {
	t.Helper()
	ix, _, err := index.Build(rows, 0)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return New(&fakeProvider{ix: ix})
}

func titles(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestPopular_OrderAndPagination(t *testing.T) {
	svc := loadedService(t, testRows())

	page, err := svc.Popular(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Items); !reflect.DeepEqual(got, []string{"Beta Show", "Gamma"}) {
		t.Errorf("page 1 = %v", got)
	}
	if page.Total != 4 {
		t.Errorf("total = %d, want 4", page.Total)
	}

	page, err = svc.Popular(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Items); !reflect.DeepEqual(got, []string{"Delta", "Alpha"}) {
		t.Errorf("page 2 = %v", got)
	}
}

func TestPopular_ClampsBadPagination(t *testing.T) {
	svc := loadedService(t, testRows()).WithPagination(3, 100)

	page, err := svc.Popular(-5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Skip != 0 || page.Limit != 3 {
		t.Errorf("skip/limit = %d/%d, want 0/3", page.Skip, page.Limit)
	}

	page, err = svc.Popular(100, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 || page.Total != 4 {
		t.Errorf("past-the-end page = %+v", page)
	}
}

func TestByType(t *testing.T) {
	svc := loadedService(t, testRows())

	page, err := svc.ByType(domain.TV, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Items); !reflect.DeepEqual(got, []string{"Beta Show", "Delta"}) {
		t.Errorf("tv items = %v", got)
	}
}

func TestByGenre_WordBoundary(t *testing.T) {
	svc := loadedService(t, testRows())

	page, err := svc.ByGenre("Action", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	// "Reaction Videos" must not match "Action".
	if got := titles(page.Items); !reflect.DeepEqual(got, []string{"Alpha", "Delta"}) {
		t.Errorf("action items = %v", got)
	}
}

func TestByGenre_CaseInsensitive(t *testing.T) {
	svc := loadedService(t, testRows())

	page, err := svc.ByGenre("comedy", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Items); !reflect.DeepEqual(got, []string{"Beta Show"}) {
		t.Errorf("comedy items = %v", got)
	}
}

func TestSearch(t *testing.T) {
	svc := loadedService(t, testRows())

	got, err := svc.Search("show")
	if err != nil {
		t.Fatal(err)
	}
	if gotTitles := titles(got); !reflect.DeepEqual(gotTitles, []string{"Beta Show"}) {
		t.Errorf("search = %v", gotTitles)
	}
}

func TestSearch_ShortQueryReturnsEmpty(t *testing.T) {
	svc := loadedService(t, testRows())

	for _, q := range []string{"", "a", " a "} {
		got, err := svc.Search(q)
		if err != nil {
			t.Fatalf("Search(%q) error: %v", q, err)
		}
		if len(got) != 0 {
			t.Errorf("Search(%q) = %d results, want 0", q, len(got))
		}
	}
}

func TestSearch_CapsResults(t *testing.T) {
	rows := testRows()
	svc := loadedService(t, rows).WithSearchLimit(2)

	got, err := svc.Search("ta") // matches Beta Show and Delta... and Gamma? no
	if err != nil {
		t.Fatal(err)
	}
	if len(got) > 2 {
		t.Errorf("search returned %d results, cap is 2", len(got))
	}
}

func TestGenres(t *testing.T) {
	svc := loadedService(t, testRows())

	got, err := svc.Genres()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Action", "Comedy", "Drama", "Reaction Videos"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("genres = %v, want %v", got, want)
	}
}

func TestItemByID(t *testing.T) {
	svc := loadedService(t, testRows())

	it, err := svc.ItemByID("3")
	if err != nil {
		t.Fatal(err)
	}
	if it.Title != "Gamma" {
		t.Errorf("item = %+v", it)
	}

	if _, err := svc.ItemByID("999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBrowse_NotLoaded(t *testing.T) {
	svc := New(&fakeProvider{})

	if _, err := svc.Popular(0, 10); !errors.Is(err, domain.ErrNotLoaded) {
		t.Errorf("Popular err = %v", err)
	}
	if _, err := svc.Search("alpha"); !errors.Is(err, domain.ErrNotLoaded) {
		t.Errorf("Search err = %v", err)
	}
	if _, err := svc.Genres(); !errors.Is(err, domain.ErrNotLoaded) {
		t.Errorf("Genres err = %v", err)
	}
	if _, err := svc.ItemByID("1"); !errors.Is(err, domain.ErrNotLoaded) {
		t.Errorf("ItemByID err = %v", err)
	}
}
