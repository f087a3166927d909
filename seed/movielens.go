package seed

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const DefaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

const noGenres = "(no genres listed)"

var (
	titleYear = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)
	// MovieLens lists "Matrix, The" style titles.
	trailingArticle = regexp.MustCompile(`^(.*), (The|A|An)$`)
)

// ReadMovieLens parses a MovieLens movies.csv. Rows without a year or a
// genre are skipped and counted. limit <= 0 reads every row.
func ReadMovieLens(r io.Reader, limit int) ([]Record, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseHeader(reader)
	if err != nil {
		return nil, 0, err
	}

	var (
		records []Record
		skipped int
	)
	for limit <= 0 || len(records) < limit {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, skipped, err
		}

		rec, ok := parseRow(row, idxTitle, idxGenres)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func parseHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}
	return idxTitle, idxGenres, nil
}

func parseRow(row []string, idxTitle, idxGenres int) (Record, bool) {
	if idxTitle >= len(row) || idxGenres >= len(row) {
		return Record{}, false
	}

	m := titleYear.FindStringSubmatch(strings.TrimSpace(row[idxTitle]))
	if m == nil {
		return Record{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return Record{}, false
	}

	name := m[1]
	if a := trailingArticle.FindStringSubmatch(name); a != nil {
		name = a[2] + " " + a[1]
	}

	var genres []string
	for _, g := range strings.Split(row[idxGenres], "|") {
		g = strings.TrimSpace(g)
		if g == "" || g == noGenres {
			continue
		}
		genres = append(genres, g)
	}
	if len(genres) == 0 {
		return Record{}, false
	}

	return Record{Name: name, Year: year, Genres: genres}, true
}

// DownloadMovieLens fetches a MovieLens zip archive and returns the records
// of its movies.csv.
func DownloadMovieLens(ctx context.Context, url string, limit int) ([]Record, int, error) {
	if url == "" {
		return nil, 0, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return nil, 0, err
	}
	defer os.RemoveAll(tmpDir)

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := download(ctx, url, zipPath); err != nil {
		return nil, 0, err
	}
	return ReadMovieLensZip(zipPath, limit)
}

// ReadMovieLensZip reads movies.csv out of a MovieLens archive.
func ReadMovieLensZip(zipPath string, limit int) ([]Record, int, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	for _, file := range r.File {
		if filepath.Base(file.Name) != "movies.csv" {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return nil, 0, err
		}
		defer src.Close()
		return ReadMovieLens(src, limit)
	}
	return nil, 0, errors.New("movies.csv not found in zip")
}

func download(ctx context.Context, url, dest string) error {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 60 * time.Second
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
