package movie

import (
	"strings"

	"nettileffa/errs"
	"nettileffa/pkg/validation"
)

var ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")

// Person is an actor or a director. The (FirstName, LastName) pair is the
// identity of a person: two inputs with the same pair refer to the same row.
type Person struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName" validate:"required,notblank,max=100"`
}

// FullName returns "first last".
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Movie struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Year     int      `json:"year"`
	AgeLimit int      `json:"age_limit"`
	Rating   int      `json:"rating"`
	Synopsis *string  `json:"synopsis"`
	Genres   []string `json:"genres"`
	Actors   []Person `json:"actors"`
	Director *Person  `json:"director"`
}

// MovieInput is the body of create and update operations. Its tags are the
// single validation schema used by the server and by the Go client.
type MovieInput struct {
	Name     string   `json:"name" validate:"required,notblank,max=255"`
	Year     int      `json:"year" validate:"min=1895,max=3000"`
	AgeLimit int      `json:"age_limit" validate:"min=0,max=18"`
	Rating   int      `json:"rating" validate:"min=0,max=5"`
	Synopsis *string  `json:"synopsis,omitempty"`
	Genres   []string `json:"genres" validate:"required,min=1,dive,notblank,max=50"`
	Actors   []Person `json:"actors,omitempty" validate:"omitempty,dive"`
	Director *Person  `json:"director,omitempty"`
}

func (in MovieInput) Validate() error {
	return validation.Struct(in)
}

// Normalize trims surrounding whitespace and drops duplicate genres and
// actors, keeping the first occurrence.
func (in MovieInput) Normalize() MovieInput {
	out := in
	out.Name = strings.TrimSpace(in.Name)

	if in.Synopsis != nil {
		s := strings.TrimSpace(*in.Synopsis)
		out.Synopsis = &s
		if s == "" {
			out.Synopsis = nil
		}
	}

	out.Genres = make([]string, 0, len(in.Genres))
	seenGenre := make(map[string]bool, len(in.Genres))
	for _, g := range in.Genres {
		g = strings.TrimSpace(g)
		if seenGenre[g] {
			continue
		}
		seenGenre[g] = true
		out.Genres = append(out.Genres, g)
	}

	out.Actors = make([]Person, 0, len(in.Actors))
	seenActor := make(map[Person]bool, len(in.Actors))
	for _, a := range in.Actors {
		a = a.trimmed()
		if seenActor[a] {
			continue
		}
		seenActor[a] = true
		out.Actors = append(out.Actors, a)
	}

	if in.Director != nil {
		d := in.Director.trimmed()
		out.Director = &d
	}

	return out
}

func (p Person) trimmed() Person {
	return Person{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
	}
}
