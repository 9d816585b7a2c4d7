package models

// Genre describes the genre a movie belongs to.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director describes the director of a movie.
type Director struct {
	Name string `json:"Name"`
	Bio  string `json:"Bio"`
}

// Movie is a catalog entry that users can browse and add to favorites.
type Movie struct {
	MovieID     string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	Actors      []string `json:"Actors"`
	ImagePath   string   `json:"ImagePath"`
	Featured    bool     `json:"Featured"`
}

// TableName returns the name of the database table
// associated with the Movie model.
func (m Movie) TableName() string {
	return "movies"
}
