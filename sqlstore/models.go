package sqlstore

import (
	"nettileffa/movie"
)

// MovieModel represents the database model for movies.
type MovieModel struct {
	ID         int64   `gorm:"primaryKey"`
	Name       string  `gorm:"not null"`
	Year       int     `gorm:"not null"`
	AgeLimit   int     `gorm:"not null"`
	Rating     int     `gorm:"not null"`
	Synopsis   *string
	DirectorID *int64
	Director   *PersonModel  `gorm:"foreignKey:DirectorID"`
	Genres     []GenreModel  `gorm:"many2many:movie_genre;joinForeignKey:MovieID;joinReferences:GenreID"`
	Actors     []PersonModel `gorm:"many2many:movie_actor;joinForeignKey:MovieID;joinReferences:PersonID"`
}

func (MovieModel) TableName() string {
	return "movies"
}

type GenreModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (GenreModel) TableName() string {
	return "genres"
}

type PersonModel struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
}

func (PersonModel) TableName() string {
	return "people"
}

type MovieGenreModel struct {
	MovieID int64 `gorm:"primaryKey"`
	GenreID int64 `gorm:"primaryKey"`
}

func (MovieGenreModel) TableName() string {
	return "movie_genre"
}

type MovieActorModel struct {
	MovieID  int64 `gorm:"primaryKey"`
	PersonID int64 `gorm:"primaryKey"`
}

func (MovieActorModel) TableName() string {
	return "movie_actor"
}

func (m MovieModel) toDomain() movie.Movie {
	out := movie.Movie{
		ID:       m.ID,
		Name:     m.Name,
		Year:     m.Year,
		AgeLimit: m.AgeLimit,
		Rating:   m.Rating,
		Synopsis: m.Synopsis,
		Genres:   make([]string, len(m.Genres)),
		Actors:   make([]movie.Person, len(m.Actors)),
	}
	for i, g := range m.Genres {
		out.Genres[i] = g.Name
	}
	for i, a := range m.Actors {
		out.Actors[i] = a.toDomain()
	}
	if m.Director != nil {
		d := m.Director.toDomain()
		out.Director = &d
	}
	return out
}

func (p PersonModel) toDomain() movie.Person {
	return movie.Person{FirstName: p.FirstName, LastName: p.LastName}
}
