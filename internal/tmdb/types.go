package tmdb

// Movie is the list-view shape returned by trending endpoints.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity,omitempty"`
}

// MovieDetails mirrors /movie/{id}.
type MovieDetails struct {
	Movie
	Genres   []Genre `json:"genres,omitempty"`
	Runtime  int     `json:"runtime,omitempty"`
	Tagline  string  `json:"tagline,omitempty"`
	Homepage string  `json:"homepage,omitempty"`
}

// Genre is an id/name pair.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TrendingResponse mirrors /trending/movie/week.
type TrendingResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

// Popularity thresholds for StatusLabel.
const (
	TrendingThreshold = 400
	PopularThreshold  = 200
)

// Status labels shown next to a movie.
const (
	LabelTrending    = "Trending"
	LabelPopular     = "Popular"
	LabelRecommended = "Recommended"
)

// StatusLabel classifies a movie by popularity.
func StatusLabel(m Movie) string {
	switch {
	case m.Popularity > TrendingThreshold:
		return LabelTrending
	case m.Popularity > PopularThreshold:
		return LabelPopular
	default:
		return LabelRecommended
	}
}

// GenreNames flattens the genre list.
func (d MovieDetails) GenreNames() []string {
	if len(d.Genres) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}
