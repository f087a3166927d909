package sqlstore

import (
	"context"
	"strings"

	"nettileffa/movie"
	"nettileffa/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPeopleLimit = 10
	maxPeopleLimit     = 50
)

var sortColumns = map[movie.SortKey]string{
	movie.SortYear:   "year",
	movie.SortRating: "rating",
	movie.SortName:   "name",
}

type Option func(r *MovieRepository)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *MovieRepository) {
		if l != nil {
			r.logger = l
		}
	}
}

// MovieRepository implements movie.Repository on top of gorm.
type MovieRepository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewMovieRepository(db *gorm.DB, opts ...Option) *MovieRepository {
	r := &MovieRepository{db: db, logger: logger.NOOPLogger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MovieRepository) FindMovies(ctx context.Context, q movie.ListQuery) (movie.Page, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return movie.Page{}, err
	}

	query := r.db.WithContext(ctx).Model(&MovieModel{})
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(synopsis, '')) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return movie.Page{}, r.fail("count movies", err, nil)
	}

	var models []MovieModel
	err := preload(query).
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: sortColumns[q.Sort]},
			Desc:   q.Order == movie.OrderDesc,
		}).
		Order("id ASC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&models).Error
	if err != nil {
		return movie.Page{}, r.fail("find movies", err, nil)
	}

	items := make([]movie.Movie, len(models))
	for i, m := range models {
		items[i] = m.toDomain()
	}
	return movie.Page{Total: total, Items: items}, nil
}

func (r *MovieRepository) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	var m MovieModel
	if err := preload(r.db.WithContext(ctx)).Take(&m, id).Error; err != nil {
		return movie.Movie{}, r.fail("get movie", err, movie.ErrMovieNotFound)
	}
	return m.toDomain(), nil
}

// CreateMovie inserts the movie and resolves its genres, actors and
// director by natural key in one transaction.
func (r *MovieRepository) CreateMovie(ctx context.Context, in movie.MovieInput) (movie.Movie, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		directorID, err := personID(tx, in.Director)
		if err != nil {
			return err
		}

		m := MovieModel{
			Name:       in.Name,
			Year:       in.Year,
			AgeLimit:   in.AgeLimit,
			Rating:     in.Rating,
			Synopsis:   in.Synopsis,
			DirectorID: directorID,
		}
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return err
		}
		id = m.ID

		return link(tx, id, in)
	})
	if err != nil {
		return movie.Movie{}, r.fail("create movie", err, nil)
	}

	return r.GetMovie(ctx, id)
}

// UpdateMovie replaces the scalars, the director and both association sets.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id int64, in movie.MovieInput) (movie.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&MovieModel{}, id).Error; err != nil {
			return err
		}

		directorID, err := personID(tx, in.Director)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        in.Name,
			"year":        in.Year,
			"age_limit":   in.AgeLimit,
			"rating":      in.Rating,
			"synopsis":    nil,
			"director_id": nil,
		}
		if in.Synopsis != nil {
			updates["synopsis"] = *in.Synopsis
		}
		if directorID != nil {
			updates["director_id"] = *directorID
		}
		if err := tx.Model(&MovieModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("movie_id = ?", id).Delete(&MovieGenreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&MovieActorModel{}).Error; err != nil {
			return err
		}

		return link(tx, id, in)
	})
	if err != nil {
		return movie.Movie{}, r.fail("update movie", err, movie.ErrMovieNotFound)
	}

	return r.GetMovie(ctx, id)
}

func (r *MovieRepository) ListGenres(ctx context.Context) ([]string, error) {
	const sql = `
SELECT DISTINCT g.name
FROM genres g
JOIN movie_genre mg ON mg.genre_id = g.id
ORDER BY g.name`

	var names []string
	if err := r.db.WithContext(ctx).Raw(sql).Scan(&names).Error; err != nil {
		return nil, r.fail("list genres", err, nil)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// SearchPeople returns people holding role whose first name, last name or
// full name contains query, ignoring case.
func (r *MovieRepository) SearchPeople(ctx context.Context, role movie.Role, query string, limit int) ([]movie.Person, error) {
	if limit <= 0 {
		limit = defaultPeopleLimit
	}
	if limit > maxPeopleLimit {
		limit = maxPeopleLimit
	}

	join := "JOIN movie_actor ma ON ma.person_id = p.id"
	if role == movie.RoleDirector {
		join = "JOIN movies m ON m.director_id = p.id"
	}

	sql := `
SELECT DISTINCT p.id, p.first_name, p.last_name
FROM people p
` + join + `
WHERE LOWER(p.first_name) LIKE ? ESCAPE '\'
   OR LOWER(p.last_name) LIKE ? ESCAPE '\'
   OR LOWER(p.first_name || ' ' || p.last_name) LIKE ? ESCAPE '\'
ORDER BY p.last_name, p.first_name, p.id
LIMIT ?`

	pattern := containsPattern(query)
	var models []PersonModel
	if err := r.db.WithContext(ctx).Raw(sql, pattern, pattern, pattern, limit).Scan(&models).Error; err != nil {
		return nil, r.fail("search people", err, nil)
	}

	people := make([]movie.Person, len(models))
	for i, m := range models {
		people[i] = m.toDomain()
	}
	return people, nil
}

// Reset deletes every catalog row. It is meant for seeding and tests.
func (r *MovieRepository) Reset(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{
			&MovieActorModel{}, &MovieGenreModel{}, &MovieModel{}, &GenreModel{}, &PersonModel{},
		} {
			if err := tx.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return r.fail("reset catalog", err, nil)
}

func (r *MovieRepository) fail(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	out := translate(err, notFound)
	if out != notFound {
		r.logger.Errorw("catalog store failure", "op", op, "error", err)
	}
	return out
}

func preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Director").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name")
		}).
		Preload("Actors", func(db *gorm.DB) *gorm.DB {
			return db.Order("people.last_name").Order("people.first_name")
		})
}

func link(tx *gorm.DB, movieID int64, in movie.MovieInput) error {
	genres := make([]MovieGenreModel, 0, len(in.Genres))
	seenGenre := map[int64]bool{}
	for _, name := range in.Genres {
		id, err := genreID(tx, name)
		if err != nil {
			return err
		}
		if seenGenre[id] {
			continue
		}
		seenGenre[id] = true
		genres = append(genres, MovieGenreModel{MovieID: movieID, GenreID: id})
	}
	if len(genres) > 0 {
		if err := tx.Create(&genres).Error; err != nil {
			return err
		}
	}

	actors := make([]MovieActorModel, 0, len(in.Actors))
	seenActor := map[int64]bool{}
	for i := range in.Actors {
		id, err := personID(tx, &in.Actors[i])
		if err != nil {
			return err
		}
		if seenActor[*id] {
			continue
		}
		seenActor[*id] = true
		actors = append(actors, MovieActorModel{MovieID: movieID, PersonID: *id})
	}
	if len(actors) > 0 {
		if err := tx.Create(&actors).Error; err != nil {
			return err
		}
	}
	return nil
}

// genreID returns the id of the genre called name, inserting it first when
// missing. Concurrent inserts of the same name converge on one row.
func genreID(tx *gorm.DB, name string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&GenreModel{Name: name}).Error
	if err != nil {
		return 0, err
	}

	var g GenreModel
	if err := tx.Where("name = ?", name).Take(&g).Error; err != nil {
		return 0, err
	}
	return g.ID, nil
}

// personID is genreID for people; a nil person yields a nil id.
func personID(tx *gorm.DB, p *movie.Person) (*int64, error) {
	if p == nil {
		return nil, nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "first_name"}, {Name: "last_name"}},
		DoNothing: true,
	}).Create(&PersonModel{FirstName: p.FirstName, LastName: p.LastName}).Error
	if err != nil {
		return nil, err
	}

	var m PersonModel
	if err := tx.Where("first_name = ? AND last_name = ?", p.FirstName, p.LastName).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m.ID, nil
}

// containsPattern lowercases s and wraps it in % after escaping LIKE
// wildcards, so the user text is matched literally.
func containsPattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
