package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

const csvFixture = `id,title,overview,release_date,vote_average,vote_count,popularity,poster_path,genre_names,type
603,The Matrix,A hacker learns the truth,1999-03-30,8.2,24000,88.5,/matrix.jpg,"Action, Science Fiction",movie
1396,Breaking Bad,A teacher turns to crime,2008-01-20,8.9,12000,245.1,/bb.jpg,"Crime, Drama",tv
999,No Numbers,Some overview,,not-a-number,n/a,,,Drama,movie
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead_CSV(t *testing.T) {
	rows, err := Read(writeFixture(t, "content.csv", csvFixture))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.ID != "603" || first.Title != "The Matrix" || first.Type != "movie" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.GenreNames != "Action, Science Fiction" {
		t.Errorf("genre_names = %q", first.GenreNames)
	}
	if first.VoteAverage != 8.2 || first.VoteCount != 24000 || first.Popularity != 88.5 {
		t.Errorf("numeric fields = %v %v %v", first.VoteAverage, first.VoteCount, first.Popularity)
	}

	// Malformed numerics degrade to zero, never fail the read.
	bad := rows[2]
	if bad.VoteAverage != 0 || bad.VoteCount != 0 || bad.Popularity != 0 {
		t.Errorf("malformed numerics should be zero, got %+v", bad)
	}
}

func TestRead_CSVColumnOrderIndependent(t *testing.T) {
	reordered := `title,id,type,overview,genre_names
Alpha,1,movie,space war,Action
`
	rows, err := Read(writeFixture(t, "reordered.csv", reordered))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].ID != "1" || rows[0].Title != "Alpha" || rows[0].Overview != "space war" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestRead_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.parquet")

	title := "Alpha"
	overview := "space war"
	genres := "Action"
	mtype := "movie"
	pop := 12.5
	src := []parquetRow{
		{ID: "1", Title: &title, Overview: &overview, GenreNames: &genres, Type: &mtype, Popularity: &pop},
		{ID: "2"}, // all nullable columns absent
	}
	if err := parquet.WriteFile(path, src); err != nil {
		t.Fatalf("write parquet fixture: %v", err)
	}

	rows, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Title != "Alpha" || rows[0].Popularity != 12.5 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
	if rows[1].Title != "" || rows[1].Popularity != 0 {
		t.Errorf("nulls should map to zero values, got %+v", rows[1])
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, domain.ErrSnapshotUnavailable) {
		t.Fatalf("err = %v, want ErrSnapshotUnavailable", err)
	}
}

func TestRead_UnsupportedExtension(t *testing.T) {
	path := writeFixture(t, "content.json", "{}")
	_, err := Read(path)
	if !errors.Is(err, domain.ErrSnapshotUnavailable) {
		t.Fatalf("err = %v, want ErrSnapshotUnavailable", err)
	}
}
