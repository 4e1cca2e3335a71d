// Package datasettest builds small in-memory datasets for tests.
package datasettest

import "github.com/davetashner/filmdash/internal/dataset"

// Row describes a movie by genre name instead of an indicator slice.
type Row struct {
	Title    string
	Director string
	Year     int
	Rating   float64
	Gross    float64 // 0 means missing
	Votes    int
	Genres   []string
}

// Build returns a dataset with the given genre columns and rows.
func Build(genres []string, rows ...Row) *dataset.Dataset {
	at := make(map[string]int, len(genres))
	for i, g := range genres {
		at[g] = i
	}
	movies := make([]dataset.Movie, 0, len(rows))
	for _, r := range rows {
		flags := make([]bool, len(genres))
		for _, g := range r.Genres {
			if i, ok := at[g]; ok {
				flags[i] = true
			}
		}
		m := dataset.Movie{
			Title:    r.Title,
			Director: r.Director,
			Year:     r.Year,
			Rating:   r.Rating,
			Votes:    r.Votes,
			Genres:   flags,
		}
		if r.Gross != 0 {
			g := r.Gross
			m.Gross = &g
		}
		movies = append(movies, m)
	}
	return dataset.New(genres, movies)
}

// TwoMovies is the two-row dataset used throughout the pipeline tests:
// A (2000, 8.0, Drama) and B (2001, 9.0, Action).
func TwoMovies() *dataset.Dataset {
	return Build([]string{"Action", "Drama"},
		Row{Title: "Movie A", Year: 2000, Rating: 8.0, Gross: 100, Votes: 1000, Genres: []string{"Drama"}},
		Row{Title: "Movie B", Year: 2001, Rating: 9.0, Gross: 300, Votes: 3000, Genres: []string{"Action"}},
	)
}

// Sample is a small but varied dataset spanning several year bins, ratings and
// genres, including a movie with no gross value.
func Sample() *dataset.Dataset {
	return Build([]string{"Action", "Crime", "Drama", "Sci-Fi"},
		Row{Title: "The Shawshank Redemption", Director: "Frank Darabont", Year: 1994, Rating: 9.3, Gross: 28341469, Votes: 2343110, Genres: []string{"Drama"}},
		Row{Title: "The Godfather", Director: "Francis Ford Coppola", Year: 1972, Rating: 9.2, Gross: 134966411, Votes: 1620367, Genres: []string{"Crime", "Drama"}},
		Row{Title: "The Dark Knight", Director: "Christopher Nolan", Year: 2008, Rating: 9.0, Gross: 534858444, Votes: 2303232, Genres: []string{"Action", "Crime", "Drama"}},
		Row{Title: "Inception", Director: "Christopher Nolan", Year: 2010, Rating: 8.8, Gross: 292576195, Votes: 2067042, Genres: []string{"Action", "Sci-Fi"}},
		Row{Title: "12 Angry Men", Director: "Sidney Lumet", Year: 1957, Rating: 9.0, Gross: 4360000, Votes: 689845, Genres: []string{"Crime", "Drama"}},
		Row{Title: "Paths of Glory", Director: "Stanley Kubrick", Year: 1957, Rating: 8.4, Votes: 178092, Genres: []string{"Drama"}},
		Row{Title: "Alien", Director: "Ridley Scott", Year: 1979, Rating: 8.4, Gross: 78900000, Votes: 787806, Genres: []string{"Sci-Fi"}},
		Row{Title: "Memento", Director: "Christopher Nolan", Year: 2000, Rating: 8.4, Gross: 25544867, Votes: 1125712, Genres: []string{"Crime"}},
		Row{Title: "Heat", Director: "Michael Mann", Year: 1995, Rating: 8.2, Gross: 67436818, Votes: 577113, Genres: []string{"Action", "Crime", "Drama"}},
		Row{Title: "Gravity", Director: "Alfonso Cuaron", Year: 2013, Rating: 7.7, Gross: 274092705, Votes: 776430, Genres: []string{"Drama", "Sci-Fi"}},
	)
}
