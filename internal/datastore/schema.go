package datastore

// MoviesTable holds exported discovery results.
const MoviesTable = "movies"

// MoviesSchema is the SQLite definition of MoviesTable. genre_ids is comma-joined and
// available_on is the flatrate display string for the exported region.
const MoviesSchema = `CREATE TABLE IF NOT EXISTS movies (
	id INTEGER PRIMARY KEY,
	title TEXT,
	original_title TEXT,
	original_language TEXT,
	overview TEXT,
	poster_path TEXT,
	backdrop_path TEXT,
	release_date TEXT,
	genre_ids TEXT,
	runtime INTEGER,
	tagline TEXT,
	language TEXT,
	region TEXT,
	available_on TEXT
)`
