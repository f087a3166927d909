package httpserver

import (
	"strings"

	"nettileffa/errs"
	"nettileffa/movie"
)

// MovieRequest is the JSON body of POST and PUT /api/movies. The numeric
// fields are pointers so that a missing value is told apart from zero.
type MovieRequest struct {
	Name     string         `json:"name"`
	Year     *int           `json:"year" validate:"required"`
	AgeLimit *int           `json:"age_limit" validate:"required"`
	Rating   *int           `json:"rating" validate:"required"`
	Synopsis *string        `json:"synopsis"`
	Genres   []string       `json:"genres"`
	Actors   []movie.Person `json:"actors"`
	Director *movie.Person  `json:"director" validate:"-"`
}

func (r MovieRequest) ToInput() movie.MovieInput {
	in := movie.MovieInput{
		Name:     r.Name,
		Synopsis: r.Synopsis,
		Genres:   r.Genres,
		Actors:   r.Actors,
		Director: r.Director,
	}
	if r.Year != nil {
		in.Year = *r.Year
	}
	if r.AgeLimit != nil {
		in.AgeLimit = *r.AgeLimit
	}
	if r.Rating != nil {
		in.Rating = *r.Rating
	}
	return in
}

var errInvalidBody = errs.Invalid("invalid request body",
	errs.FieldError{Field: "body", Reason: "must be a JSON object matching the movie schema"})

// joinInvalid merges the presence check of the request with the rules of
// the movie input into one EINVALID error. A field already reported as
// missing is not reported again for its zero value.
func joinInvalid(presence, content error) error {
	for _, err := range []error{presence, content} {
		if err != nil && errs.ErrorCode(err) != errs.EINVALID {
			return err
		}
	}

	fields := errs.ErrorFields(presence)
	missing := make(map[string]bool, len(fields))
	for _, f := range fields {
		missing[f.Field] = true
	}
	for _, f := range errs.ErrorFields(content) {
		if !missing[f.Field] {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + " " + f.Reason
	}
	return errs.Invalid("validation error: "+strings.Join(parts, "; "), fields...)
}
